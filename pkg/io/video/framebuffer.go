package video

import (
	"image"

	"golang.org/x/image/draw"
)

// FrameBuffer is a reusable buffer for raw frames and for copies of the
// grayscale images produced from them.
type FrameBuffer struct {
	buffer []uint8
	tmp    image.Image
}

// NewFrameBuffer creates a new FrameBuffer instance and initialize internal buffer
// with initialSize
func NewFrameBuffer(initialSize int) *FrameBuffer {
	return &FrameBuffer{
		buffer: make([]uint8, initialSize),
	}
}

func (buff *FrameBuffer) grow(neededSize int) {
	if len(buff.buffer) < neededSize {
		if cap(buff.buffer) >= neededSize {
			buff.buffer = buff.buffer[:neededSize]
		} else {
			buff.buffer = make([]uint8, neededSize)
		}
	}
}

// Bytes returns a slice of exactly size bytes. Memory is reused across
// calls, so the previous content is lost.
func (buff *FrameBuffer) Bytes(size int) []uint8 {
	buff.grow(size)
	return buff.buffer[:size:size]
}

// Load loads the current owned image
func (buff *FrameBuffer) Load() image.Image {
	return buff.tmp
}

// StoreCopy makes a copy of src and store its copy. StoreCopy will reuse as much memory as it can
// from the previous copies. Only *image.Gray and *image.RGBA are stored as is; other images are
// converted to *image.RGBA first.
func (buff *FrameBuffer) StoreCopy(src image.Image) {
	switch src := src.(type) {
	case *image.Gray:
		clone, ok := buff.tmp.(*image.Gray)
		if ok {
			*clone = *src
		} else {
			copied := *src
			clone = &copied
		}

		buff.grow(len(src.Pix))
		copy(buff.buffer, src.Pix)
		clone.Pix = buff.buffer[:len(src.Pix):len(src.Pix)]

		buff.tmp = clone
	case *image.RGBA:
		clone, ok := buff.tmp.(*image.RGBA)
		if ok {
			*clone = *src
		} else {
			copied := *src
			clone = &copied
		}

		buff.grow(len(src.Pix))
		copy(buff.buffer, src.Pix)
		clone.Pix = buff.buffer[:len(src.Pix):len(src.Pix)]

		buff.tmp = clone
	default:
		converted := image.NewRGBA(src.Bounds())
		draw.Draw(converted, converted.Rect, src, src.Bounds().Min, draw.Src)
		buff.StoreCopy(converted)
	}
}
