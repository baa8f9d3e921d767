package frame

import (
	"fmt"
	"image"
	"reflect"
	"testing"
)

func TestDecodeBGRX(t *testing.T) {
	l := Layout{Format: FormatBGRX, Width: 2, Height: 2, Stride: 12}
	input := []byte{
		// B     G     R     X                         padding
		0x01, 0x02, 0x03, 0x00, 0x11, 0x12, 0x13, 0x00, 0xAA, 0xAA, 0xAA, 0xAA,
		0x21, 0x22, 0x23, 0x00, 0x31, 0x32, 0x33, 0x00, 0xBB, 0xBB, 0xBB, 0xBB,
	}
	expected := &image.RGBA{
		Pix: []byte{
			0x03, 0x02, 0x01, 0xFF, 0x13, 0x12, 0x11, 0xFF, 0xAA, 0xAA, 0xAA, 0xAA,
			0x23, 0x22, 0x21, 0xFF, 0x33, 0x32, 0x31, 0xFF, 0xBB, 0xBB, 0xBB, 0xBB,
		},
		Stride: 12,
		Rect:   image.Rect(0, 0, 2, 2),
	}

	img, _, err := decodeBGRX(input, l)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(expected, img) {
		t.Errorf("Wrong decode result,\nexpected:\n%+v\ngot:\n%+v", expected, img)
	}
}

func TestDecodeGRAY8(t *testing.T) {
	l := Layout{Format: FormatGRAY8, Width: 3, Height: 2, Stride: 4}
	input := []byte{
		0x01, 0x02, 0x03, 0xEE,
		0x04, 0x05, 0x06, 0xEE,
	}
	img, _, err := decodeGRAY8(input, l)
	if err != nil {
		t.Fatal(err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}
	if v := gray.GrayAt(2, 1).Y; v != 0x06 {
		t.Errorf("expected 0x06 at (2,1), got %#x", v)
	}
	if gray.Stride != 4 {
		t.Errorf("expected stride 4, got %d", gray.Stride)
	}
}

func TestDecodeShortFrame(t *testing.T) {
	l := Layout{Format: FormatGRAY8, Width: 4, Height: 4, Stride: 4}
	if _, _, err := decodeGRAY8(make([]byte, 15), l); err == nil {
		t.Fatal("expected error for a short frame")
	}
	if _, err := NewDecoder("I420"); err == nil {
		t.Fatal("expected error for an unsupported format")
	}
}

func BenchmarkDecodeBGRX(b *testing.B) {
	sizes := []struct {
		width, height int
	}{
		{640, 480},
		{1920, 1080},
	}
	for _, sz := range sizes {
		sz := sz
		b.Run(fmt.Sprintf("%dx%d", sz.width, sz.height), func(b *testing.B) {
			l := Layout{Format: FormatBGRX, Width: sz.width, Height: sz.height, Stride: 4 * sz.width}
			input := make([]byte, l.Size())
			for i := 0; i < b.N; i++ {
				_, _, err := decodeBGRX(input, l)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
