package rgb2gray

import (
	"fmt"
	"math"

	"github.com/mediafilters/rgb2gray/pkg/caps"
	"github.com/mediafilters/rgb2gray/pkg/frame"
)

// resolveLayout turns agreed caps into the layout of the frames they
// describe. Only the first structure is looked at. Row stride comes from
// align, the host's alignment rule.
func resolveLayout(c caps.Caps, align frame.RowAligner) (frame.Layout, error) {
	if c.IsEmpty() {
		return frame.Layout{}, fmt.Errorf("%w: empty caps", ErrUnparsableCaps)
	}
	s := c[0]
	if s.Name != caps.MediaVideoRaw {
		return frame.Layout{}, fmt.Errorf("%w: media type %q", ErrUnparsableCaps, s.Name)
	}

	format, ok := s.Str(caps.FieldFormat)
	if !ok {
		return frame.Layout{}, fmt.Errorf("%w: no fixed format in %s", ErrUnparsableCaps, s)
	}
	if !frame.Supported(frame.Format(format)) {
		return frame.Layout{}, fmt.Errorf("%w: format %q", ErrUnparsableCaps, format)
	}
	width, err := dimension(s, caps.FieldWidth)
	if err != nil {
		return frame.Layout{}, err
	}
	height, err := dimension(s, caps.FieldHeight)
	if err != nil {
		return frame.Layout{}, err
	}

	l, err := frame.NewLayout(frame.Format(format), width, height, align)
	if err != nil {
		return frame.Layout{}, fmt.Errorf("%w: %v", ErrUnparsableCaps, err)
	}
	return l, nil
}

func dimension(s caps.Structure, field string) (int, error) {
	v, ok := s.Int(field)
	if !ok {
		return 0, fmt.Errorf("%w: no fixed %s in %s", ErrUnparsableCaps, field, s)
	}
	if v < 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrUnparsableCaps, field, v)
	}
	return v, nil
}
