package frame

import (
	"fmt"
	"image"
)

func checkFrame(frame []byte, l Layout, want Format) error {
	if l.Format != want {
		return fmt.Errorf("layout format is %s, expected %s", l.Format, want)
	}
	if err := l.Validate(); err != nil {
		return err
	}
	if size := l.Size(); size > len(frame) {
		return fmt.Errorf("frame length (%d) less than expected (%d)", len(frame), size)
	}
	return nil
}

// decodeBGRX swaps B and R in place and sets the padding byte to opaque
// alpha, so the same memory can be read as RGBA.
func decodeBGRX(frame []byte, l Layout) (image.Image, func(), error) {
	if err := checkFrame(frame, l, FormatBGRX); err != nil {
		return nil, func() {}, err
	}
	rowBytes := l.RowBytes()
	for y := 0; y < l.Height; y++ {
		row := frame[y*l.Stride : y*l.Stride+rowBytes]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+2], row[i+3] = row[i+2], row[i], 0xFF
		}
	}
	size := l.Size()
	return &image.RGBA{
		Pix:    frame[:size:size],
		Stride: l.Stride,
		Rect:   image.Rect(0, 0, l.Width, l.Height),
	}, func() {}, nil
}

func decodeGRAY8(frame []byte, l Layout) (image.Image, func(), error) {
	if err := checkFrame(frame, l, FormatGRAY8); err != nil {
		return nil, func() {}, err
	}
	size := l.Size()
	return &image.Gray{
		Pix:    frame[:size:size],
		Stride: l.Stride,
		Rect:   image.Rect(0, 0, l.Width, l.Height),
	}, func() {}, nil
}
