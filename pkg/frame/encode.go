package frame

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// EncodeBGRX draws src into dst laid out as l. l must be a BGRx layout with
// the same size as src's bounds. Stride padding in dst is left untouched; the
// padding byte of each pixel receives the source alpha.
func EncodeBGRX(dst []byte, l Layout, src image.Image) error {
	if err := checkFrame(dst, l, FormatBGRX); err != nil {
		return err
	}
	b := src.Bounds()
	if b.Dx() != l.Width || b.Dy() != l.Height {
		return fmt.Errorf("image size %dx%d doesn't match layout %dx%d", b.Dx(), b.Dy(), l.Width, l.Height)
	}

	size := l.Size()
	rgba := &image.RGBA{
		Pix:    dst[:size:size],
		Stride: l.Stride,
		Rect:   image.Rect(0, 0, l.Width, l.Height),
	}
	draw.Copy(rgba, image.Point{}, src, b, draw.Src, nil)

	rowBytes := l.RowBytes()
	for y := 0; y < l.Height; y++ {
		row := dst[y*l.Stride : y*l.Stride+rowBytes]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+2] = row[i+2], row[i]
		}
	}
	return nil
}
