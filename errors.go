package rgb2gray

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparsableCaps is returned when caps lack a fixed format, width or
	// height, or carry a value outside the accepted domain.
	ErrUnparsableCaps = errors.New("rgb2gray: unparsable caps")
	// ErrNotNegotiated is returned by Transform before the first successful
	// SetCaps or after Stop.
	ErrNotNegotiated = errors.New("rgb2gray: not negotiated")
	// ErrRowCountMismatch means input and output buffers hold a different
	// number of rows.
	ErrRowCountMismatch = errors.New("rgb2gray: input and output row counts differ")
	// ErrDimensionMismatch means input and output layouts describe frames
	// of different sizes.
	ErrDimensionMismatch = errors.New("rgb2gray: input and output sizes differ")
	// ErrUnsupportedOutputFormat means the output is neither BGRx nor GRAY8.
	ErrUnsupportedOutputFormat = errors.New("rgb2gray: unsupported output format")
	// ErrUnsupportedInputFormat means the input is not BGRx.
	ErrUnsupportedInputFormat = errors.New("rgb2gray: unsupported input format")
	// ErrBufferTooSmall is matched by every *BufferSizeError.
	ErrBufferTooSmall = errors.New("rgb2gray: buffer too small")
	// ErrUnknownProperty is returned for property names the element lacks.
	ErrUnknownProperty = errors.New("rgb2gray: unknown property")
	// ErrPropertyValue is returned when a property value has the wrong type
	// or is out of range.
	ErrPropertyValue = errors.New("rgb2gray: invalid property value")
)

// BufferSizeError tells the caller that a frame buffer is smaller than its
// layout requires.
type BufferSizeError struct {
	// Buffer is either "input" or "output"
	Buffer       string
	RequiredSize int
	Size         int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("rgb2gray: %s buffer of %d bytes doesn't meet the size requirement of length, %d", e.Buffer, e.Size, e.RequiredSize)
}

func (e *BufferSizeError) Unwrap() error {
	return ErrBufferTooSmall
}
