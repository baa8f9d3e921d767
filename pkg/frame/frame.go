package frame

import "image"

// Decoder wraps raw frame bytes laid out as l into an image.Image. The
// returned image may share memory with frame.
type Decoder interface {
	Decode(frame []byte, l Layout) (image.Image, func(), error)
}

// DecoderFunc is a proxy type for Decoder
type decoderFunc func(frame []byte, l Layout) (image.Image, func(), error)

func (f decoderFunc) Decode(frame []byte, l Layout) (image.Image, func(), error) {
	return f(frame, l)
}
