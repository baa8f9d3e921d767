package video

import (
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediafilters/rgb2gray"
	"github.com/mediafilters/rgb2gray/pkg/frame"
)

func solidRGBA(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// sequence returns a reader serving imgs in order, then io.EOF.
func sequence(imgs ...image.Image) Reader {
	i := 0
	return ReaderFunc(func() (image.Image, func(), error) {
		if i >= len(imgs) {
			return nil, func() {}, io.EOF
		}
		img := imgs[i]
		i++
		return img, func() {}, nil
	})
}

func TestGrayscaleGRAY8(t *testing.T) {
	e := rgb2gray.New()
	src := solidRGBA(4, 3, color.RGBA{R: 30, G: 20, B: 10, A: 0xFF})
	r := Grayscale(e, frame.FormatGRAY8, false)(sequence(src))

	img, _, err := r.Read()
	require.NoError(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok, "expected *image.Gray, got %T", img)
	assert.Equal(t, image.Rect(0, 0, 4, 3), gray.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, uint8(21), gray.GrayAt(x, y).Y)
		}
	}
	assert.Equal(t, rgb2gray.StateConfigured, e.Status())

	_, _, err = r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestGrayscaleBGRX(t *testing.T) {
	e := rgb2gray.New(rgb2gray.WithSettings(rgb2gray.Settings{Invert: true}))
	src := solidRGBA(2, 2, color.RGBA{R: 30, G: 20, B: 10, A: 0xFF})
	r := Grayscale(e, frame.FormatBGRX, false)(sequence(src))

	img, _, err := r.Read()
	require.NoError(t, err)
	rgba, ok := img.(*image.RGBA)
	require.True(t, ok, "expected *image.RGBA, got %T", img)
	assert.Equal(t, color.RGBA{R: 234, G: 234, B: 234, A: 0xFF}, rgba.RGBAAt(1, 1))

	_, out, ok := e.Layouts()
	require.True(t, ok)
	assert.Equal(t, frame.FormatBGRX, out.Format)
}

func TestGrayscaleRenegotiatesOnSizeChange(t *testing.T) {
	e := rgb2gray.New(rgb2gray.WithRowAligner(frame.AlignTo(4)))
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	r := Grayscale(e, frame.FormatGRAY8, true)(sequence(
		solidRGBA(2, 2, white),
		solidRGBA(5, 3, white),
		solidRGBA(5, 3, white),
	))

	first, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), first.Bounds())

	second, _, err := r.Read()
	require.NoError(t, err)
	gray := second.(*image.Gray)
	assert.Equal(t, image.Rect(0, 0, 5, 3), gray.Bounds())
	assert.Equal(t, 8, gray.Stride)
	assert.Equal(t, uint8(0xFF), gray.GrayAt(4, 2).Y)

	in, _, ok := e.Layouts()
	require.True(t, ok)
	assert.Equal(t, 5, in.Width)
	assert.Equal(t, 20, in.Stride)

	// settings apply from the next frame on
	e.SetShift(1)
	third, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), third.(*image.Gray).GrayAt(0, 0).Y)
}

func TestGrayscaleRenegotiatesAfterStop(t *testing.T) {
	e := rgb2gray.New()
	src := solidRGBA(2, 2, color.RGBA{A: 0xFF})
	r := Grayscale(e, frame.FormatGRAY8, false)(sequence(src, src, src))

	_, _, err := r.Read()
	require.NoError(t, err)
	require.NoError(t, e.Stop())

	// the frame in flight is dropped, the next one renegotiates
	_, _, err = r.Read()
	assert.ErrorIs(t, err, rgb2gray.ErrNotNegotiated)

	_, _, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, rgb2gray.StateConfigured, e.Status())
}

func TestGrayscaleUnsupportedFormat(t *testing.T) {
	e := rgb2gray.New()
	src := solidRGBA(2, 2, color.RGBA{A: 0xFF})
	r := Grayscale(e, "I420", false)(sequence(src))

	_, _, err := r.Read()
	assert.ErrorIs(t, err, errNoCommonFormat)
	assert.Equal(t, rgb2gray.StateUnconfigured, e.Status())
}

func TestGrayscalePropagatesReadError(t *testing.T) {
	errBroken := errors.New("broken source")
	r := Grayscale(rgb2gray.New(), frame.FormatGRAY8, false)(ReaderFunc(func() (image.Image, func(), error) {
		return nil, func() {}, errBroken
	}))

	_, _, err := r.Read()
	assert.Equal(t, errBroken, err)
}

func TestMerge(t *testing.T) {
	var calls []string
	mark := func(name string) TransformFunc {
		return func(r Reader) Reader {
			return ReaderFunc(func() (image.Image, func(), error) {
				calls = append(calls, name)
				return r.Read()
			})
		}
	}

	src := solidRGBA(1, 1, color.RGBA{A: 0xFF})
	r := Merge(mark("a"), nil, mark("b"))(sequence(src))
	img, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, src, img)
	assert.Equal(t, []string{"b", "a"}, calls)
}
