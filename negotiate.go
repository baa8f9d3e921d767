package rgb2gray

import (
	"fmt"
	"math"

	"github.com/mediafilters/rgb2gray/pkg/caps"
	"github.com/mediafilters/rgb2gray/pkg/frame"
)

// Direction tells TransformCaps which pad the given caps belong to.
type Direction int

const (
	// DirectionSrc means the caps come from the src (consumer) side; the
	// result is what the sink (producer) side has to offer.
	DirectionSrc Direction = iota + 1
	// DirectionSink means the caps come from the sink (producer) side; the
	// result is what the src side may produce.
	DirectionSink
)

func (d Direction) String() string {
	switch d {
	case DirectionSrc:
		return "src"
	case DirectionSink:
		return "sink"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func templateStructure(format caps.Value) caps.Structure {
	return caps.NewStructure(caps.MediaVideoRaw,
		caps.Field{Name: caps.FieldFormat, Value: format},
		caps.Field{Name: caps.FieldWidth, Value: caps.IntRange{Min: 0, Max: math.MaxInt32}},
		caps.Field{Name: caps.FieldHeight, Value: caps.IntRange{Min: 0, Max: math.MaxInt32}},
		caps.Field{Name: caps.FieldFrameRate, Value: caps.FractionRange{
			Min: caps.Fraction{Num: 0, Den: 1},
			Max: caps.Fraction{Num: math.MaxInt32, Den: 1},
		}},
	)
}

// SinkTemplate returns every format the element accepts as input.
func SinkTemplate() caps.Caps {
	return caps.New(templateStructure(caps.String(frame.FormatBGRX)))
}

// SrcTemplate returns every format the element can output.
func SrcTemplate() caps.Caps {
	return caps.New(templateStructure(caps.StringList{
		string(frame.FormatBGRX),
		string(frame.FormatGRAY8),
	}))
}

// transformCaps computes the caps the other pad has to accept, given caps c
// of the pad named by dir. ok is false for an unknown direction.
func transformCaps(dir Direction, c caps.Caps, filter caps.Caps) (other caps.Caps, ok bool) {
	switch dir {
	case DirectionSrc:
		other = c.Copy()
		for i := range other {
			other[i].Set(caps.FieldFormat, caps.String(frame.FormatBGRX))
		}
	case DirectionSink:
		// BGRx may be narrowed to GRAY8 or passed on as itself; GRAY8 is
		// preferred.
		other = make(caps.Caps, 0, 2*len(c))
		for _, s := range c {
			gray := s.Copy()
			gray.Set(caps.FieldFormat, caps.String(frame.FormatGRAY8))
			other = append(other, gray)
		}
		other = append(other, c.Copy()...)
	default:
		return nil, false
	}

	if filter != nil {
		other = caps.IntersectFirst(other, filter)
	}
	return other, true
}
