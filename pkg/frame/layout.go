package frame

import (
	"errors"
	"fmt"
	"math"
)

var (
	errUnknownFormat  = errors.New("frame: unknown pixel format")
	errNegativeSize   = errors.New("frame: negative width or height")
	errStrideTooSmall = errors.New("frame: stride is smaller than a packed row")
	errTooLarge       = errors.New("frame: frame size overflows int32")
)

// RowAligner maps the packed size of a row, in bytes, to the stride the host
// wants rows laid out with. It must never return less than rowBytes.
type RowAligner func(rowBytes int) int

// NoAlign keeps rows tightly packed.
func NoAlign(rowBytes int) int { return rowBytes }

// AlignTo returns a RowAligner rounding rows up to a multiple of n bytes.
// n <= 1 behaves like NoAlign.
func AlignTo(n int) RowAligner {
	if n <= 1 {
		return NoAlign
	}
	return func(rowBytes int) int {
		return (rowBytes + n - 1) / n * n
	}
}

// Layout describes how a single-plane frame is laid out in memory.
type Layout struct {
	Format        Format
	Width, Height int
	// Stride is the distance in bytes between the starts of two rows
	Stride int
}

// NewLayout computes the layout of a width x height frame of format f, with
// rows aligned by align. A nil align keeps rows packed.
func NewLayout(f Format, width, height int, align RowAligner) (Layout, error) {
	bpp, ok := BytesPerPixel(f)
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", errUnknownFormat, f)
	}
	if width < 0 || height < 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d", errNegativeSize, width, height)
	}
	if align == nil {
		align = NoAlign
	}

	l := Layout{
		Format: f,
		Width:  width,
		Height: height,
		Stride: align(width * bpp),
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// RowBytes is the number of bytes of pixel data in a row, without padding.
func (l Layout) RowBytes() int {
	bpp, _ := BytesPerPixel(l.Format)
	return l.Width * bpp
}

// Size is the minimum buffer length able to hold the frame.
func (l Layout) Size() int {
	return l.Stride * l.Height
}

// Rows returns how many whole rows buf holds under this layout.
func (l Layout) Rows(buf []byte) int {
	if l.Stride == 0 {
		return l.Height
	}
	return len(buf) / l.Stride
}

// Validate checks that l is internally consistent.
func (l Layout) Validate() error {
	if !Supported(l.Format) {
		return fmt.Errorf("%w: %q", errUnknownFormat, l.Format)
	}
	if l.Width < 0 || l.Height < 0 {
		return fmt.Errorf("%w: %dx%d", errNegativeSize, l.Width, l.Height)
	}
	if l.Stride < l.RowBytes() {
		return fmt.Errorf("%w: stride %d, row %d", errStrideTooSmall, l.Stride, l.RowBytes())
	}
	if int64(l.Stride)*int64(l.Height) > math.MaxInt32 {
		return fmt.Errorf("%w: %d x %d", errTooLarge, l.Stride, l.Height)
	}
	return nil
}

func (l Layout) String() string {
	return fmt.Sprintf("%s %dx%d stride=%d", l.Format, l.Width, l.Height, l.Stride)
}
