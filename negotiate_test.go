package rgb2gray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediafilters/rgb2gray/pkg/caps"
	"github.com/mediafilters/rgb2gray/pkg/frame"
)

func fixedCaps(format frame.Format, width, height int) caps.Caps {
	return caps.New(caps.NewStructure(caps.MediaVideoRaw,
		caps.Field{Name: caps.FieldFormat, Value: caps.String(format)},
		caps.Field{Name: caps.FieldWidth, Value: caps.Int(width)},
		caps.Field{Name: caps.FieldHeight, Value: caps.Int(height)},
		caps.Field{Name: caps.FieldFrameRate, Value: caps.Fraction{Num: 30, Den: 1}},
	))
}

func formats(t *testing.T, c caps.Caps) []string {
	var out []string
	for _, s := range c {
		f, ok := s.Str(caps.FieldFormat)
		require.True(t, ok, "structure %s has no fixed format", s)
		out = append(out, f)
	}
	return out
}

func TestTransformCapsSrcForcesBGRX(t *testing.T) {
	in := caps.MustParse("video/x-raw, format=GRAY8, width=320, height=240, framerate=(fraction)[ 1/1, 60/1 ]; " +
		"video/x-raw, format={ BGRx, GRAY8 }, width=[ 1, 1920 ], height=[ 1, 1080 ]")

	out, ok := transformCaps(DirectionSrc, in, nil)
	require.True(t, ok)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"BGRx", "BGRx"}, formats(t, out))

	for i := range out {
		for _, field := range []string{caps.FieldWidth, caps.FieldHeight, caps.FieldFrameRate} {
			expected, _ := in[i].Get(field)
			actual, _ := out[i].Get(field)
			assert.Equal(t, expected, actual, field)
		}
	}

	// the input caps are not modified
	f, _ := in[0].Str(caps.FieldFormat)
	assert.Equal(t, "GRAY8", f)
}

func TestTransformCapsSrcIdempotent(t *testing.T) {
	in := fixedCaps(frame.FormatBGRX, 640, 480)
	out, ok := transformCaps(DirectionSrc, in, nil)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestTransformCapsSinkOffersBoth(t *testing.T) {
	in := fixedCaps(frame.FormatBGRX, 640, 480)

	out, ok := transformCaps(DirectionSink, in, nil)
	require.True(t, ok)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"GRAY8", "BGRx"}, formats(t, out))

	for _, s := range out {
		for _, field := range []string{caps.FieldWidth, caps.FieldHeight, caps.FieldFrameRate} {
			expected, _ := in[0].Get(field)
			actual, _ := s.Get(field)
			assert.Equal(t, expected, actual, field)
		}
	}
}

func TestTransformCapsSinkTemplate(t *testing.T) {
	out, ok := transformCaps(DirectionSink, SinkTemplate(), nil)
	require.True(t, ok)
	assert.Equal(t, []string{"GRAY8", "BGRx"}, formats(t, out))
	assert.True(t, caps.CanIntersect(out, SrcTemplate()))
}

func TestTransformCapsFilter(t *testing.T) {
	in := fixedCaps(frame.FormatBGRX, 640, 480)

	cases := map[string]struct {
		filter   caps.Caps
		expected []string
	}{
		"FilterDoesNotReorder": {
			filter:   caps.MustParse("video/x-raw, format=BGRx; video/x-raw, format=GRAY8"),
			expected: []string{"GRAY8", "BGRx"},
		},
		"FilterRestricts": {
			filter:   caps.MustParse("video/x-raw, format=BGRx"),
			expected: []string{"BGRx"},
		},
		"FilterList": {
			filter:   SrcTemplate(),
			expected: []string{"GRAY8", "BGRx"},
		},
		"FilterDisjoint": {
			filter:   caps.MustParse("video/x-raw, format=GRAY8, width=1280"),
			expected: nil,
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			out, ok := transformCaps(DirectionSink, in, c.filter)
			require.True(t, ok)
			assert.Equal(t, c.expected, formats(t, out))
		})
	}
}

func TestTransformCapsInvalidDirection(t *testing.T) {
	out, ok := transformCaps(Direction(0), fixedCaps(frame.FormatBGRX, 1, 1), nil)
	assert.False(t, ok)
	assert.Nil(t, out)

	e := New()
	out, ok = e.TransformCaps(Direction(7), fixedCaps(frame.FormatBGRX, 1, 1), nil)
	assert.False(t, ok)
	assert.Nil(t, out)
	assert.Equal(t, "Direction(7)", Direction(7).String())
}

func TestTemplates(t *testing.T) {
	assert.Equal(t,
		"video/x-raw, format=(string)BGRx, width=(int)[ 0, 2147483647 ], height=(int)[ 0, 2147483647 ], framerate=(fraction)[ 0/1, 2147483647/1 ]",
		SinkTemplate().String())
	assert.Equal(t,
		"video/x-raw, format=(string){ BGRx, GRAY8 }, width=(int)[ 0, 2147483647 ], height=(int)[ 0, 2147483647 ], framerate=(fraction)[ 0/1, 2147483647/1 ]",
		SrcTemplate().String())
}
