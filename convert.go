package rgb2gray

import (
	"fmt"

	"github.com/mediafilters/rgb2gray/pkg/frame"
)

// BT.601 luma coefficients scaled by 65536. They sum to exactly 65536, so
// white maps to 255.
// See https://en.wikipedia.org/wiki/YUV#SDTV_with_BT.601
const (
	lumaR = 19595 // 0.299 * 65536
	lumaG = 38470 // 0.587 * 65536
	lumaB = 7471  // 0.114 * 65536
)

// FrameView is a frame buffer together with the layout describing it. The
// buffer is borrowed for the duration of one call and never retained.
type FrameView struct {
	Data   []byte
	Layout frame.Layout
}

// Gray returns the output value of a single BGRx pixel under s.
func Gray(b, g, r uint8, s Settings) uint8 {
	return luma(b, g, r, s.Shift, invertMask(s.Invert))
}

// luma computes the shifted luma of one pixel. For 8-bit values 255-v equals
// v^0xFF, so inversion is an XOR with mask.
func luma(b, g, r, shift, mask uint8) uint8 {
	y := (uint32(r)*lumaR + uint32(g)*lumaG + uint32(b)*lumaB) >> 16
	return (uint8(y) + shift) ^ mask
}

func invertMask(invert bool) uint8 {
	if invert {
		return 0xFF
	}
	return 0
}

// rowConverter writes one output row from one input row. in holds exactly
// width BGRx pixels and out exactly width output pixels.
type rowConverter func(in, out []byte, shift, mask uint8)

func grayRowToBGRX(in, out []byte, shift, mask uint8) {
	out = out[:len(in)]
	for i := 0; i < len(in); i += 4 {
		p := in[i : i+4 : i+4]
		q := out[i : i+3 : i+3]
		v := luma(p[0], p[1], p[2], shift, mask)
		q[0], q[1], q[2] = v, v, v
	}
}

func grayRowToGRAY8(in, out []byte, shift, mask uint8) {
	in = in[:4*len(out)]
	for x := range out {
		p := in[4*x : 4*x+4 : 4*x+4]
		out[x] = luma(p[0], p[1], p[2], shift, mask)
	}
}

// converterFor selects the row strategy for an output format once, so the
// pixel loop never branches on format.
func converterFor(out frame.Format) (rowConverter, error) {
	switch out {
	case frame.FormatBGRX:
		return grayRowToBGRX, nil
	case frame.FormatGRAY8:
		return grayRowToGRAY8, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedOutputFormat, out)
}

// Convert writes the grayscale version of in into out. in must be BGRx; out
// may be BGRx, in which case the three colour bytes of each pixel receive
// the same value and the padding byte is left alone, or GRAY8. Bytes past
// the end of each row, up to the stride, are neither read nor written.
func Convert(in, out FrameView, s Settings) error {
	if in.Layout.Format != frame.FormatBGRX {
		return fmt.Errorf("%w: %q", ErrUnsupportedInputFormat, in.Layout.Format)
	}
	conv, err := converterFor(out.Layout.Format)
	if err != nil {
		return err
	}
	return convert(conv, in, out, s)
}

func convert(conv rowConverter, in, out FrameView, s Settings) error {
	if err := checkView("input", in); err != nil {
		return err
	}
	if err := checkView("output", out); err != nil {
		return err
	}
	if in.Layout.Width != out.Layout.Width || in.Layout.Height != out.Layout.Height {
		return fmt.Errorf("%w: %dx%d to %dx%d", ErrDimensionMismatch,
			in.Layout.Width, in.Layout.Height, out.Layout.Width, out.Layout.Height)
	}
	if inRows, outRows := in.Layout.Rows(in.Data), out.Layout.Rows(out.Data); inRows != outRows {
		return fmt.Errorf("%w: %d and %d", ErrRowCountMismatch, inRows, outRows)
	}

	inStride, outStride := in.Layout.Stride, out.Layout.Stride
	inRow, outRow := in.Layout.RowBytes(), out.Layout.RowBytes()
	mask := invertMask(s.Invert)
	for y := 0; y < in.Layout.Height; y++ {
		conv(
			in.Data[y*inStride:y*inStride+inRow],
			out.Data[y*outStride:y*outStride+outRow],
			s.Shift, mask,
		)
	}
	return nil
}

func checkView(name string, v FrameView) error {
	if err := v.Layout.Validate(); err != nil {
		return fmt.Errorf("%w: %s layout: %v", ErrUnparsableCaps, name, err)
	}
	if size := v.Layout.Size(); len(v.Data) < size {
		return &BufferSizeError{Buffer: name, RequiredSize: size, Size: len(v.Data)}
	}
	return nil
}
