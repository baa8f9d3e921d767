package video

import (
	"errors"
	"fmt"
	"image"

	"github.com/mediafilters/rgb2gray"
	"github.com/mediafilters/rgb2gray/internal/logging"
	"github.com/mediafilters/rgb2gray/pkg/caps"
	"github.com/mediafilters/rgb2gray/pkg/frame"
)

var logger = logging.NewLogger("rgb2gray/io/video")

var errNoCommonFormat = errors.New("grayscale: no output format in common with the element")

// Converter is a grayscale element whose negotiated layouts can be queried.
// *rgb2gray.Rgb2Gray implements it.
type Converter interface {
	rgb2gray.Element
	Layouts() (in, out frame.Layout, ok bool)
}

// Grayscale returns a transform converting every frame to grayscale with e.
// format is the wanted output format, frame.FormatGRAY8 producing
// *image.Gray frames and frame.FormatBGRX producing *image.RGBA frames with
// equal colour channels.
//
// The element is negotiated on the first frame and again whenever the frame
// size changes or the element was stopped, so format changes only happen
// between frames. Unless copyFrame is set, returned images share memory with
// the transform and are overwritten by the next Read.
func Grayscale(e Converter, format frame.Format, copyFrame bool) TransformFunc {
	return func(r Reader) Reader {
		var (
			configured          bool
			inLayout, outLayout frame.Layout
			decoder             frame.Decoder
			inBuf               = NewFrameBuffer(0)
			outBuf              = NewFrameBuffer(0)
			copied              = NewFrameBuffer(0)
		)

		negotiate := func(width, height int) error {
			configured = false

			in := caps.New(caps.NewStructure(caps.MediaVideoRaw,
				caps.Field{Name: caps.FieldFormat, Value: caps.String(frame.FormatBGRX)},
				caps.Field{Name: caps.FieldWidth, Value: caps.Int(width)},
				caps.Field{Name: caps.FieldHeight, Value: caps.Int(height)},
			))
			filter := caps.New(caps.NewStructure(caps.MediaVideoRaw,
				caps.Field{Name: caps.FieldFormat, Value: caps.String(format)},
			))

			candidates, ok := e.TransformCaps(rgb2gray.DirectionSink, in, filter)
			if !ok || candidates.IsEmpty() {
				return fmt.Errorf("%w: %s", errNoCommonFormat, format)
			}
			out := candidates.Fixate()

			// what the output side asks from upstream has to cover our input
			upstream, ok := e.TransformCaps(rgb2gray.DirectionSrc, out, rgb2gray.SinkTemplate())
			if !ok || !caps.CanIntersect(upstream, in) {
				return fmt.Errorf("%w: %s can't be produced from %s", errNoCommonFormat, out, in)
			}

			if err := e.SetCaps(in, out); err != nil {
				return err
			}
			inLayout, outLayout, ok = e.Layouts()
			if !ok {
				return rgb2gray.ErrNotNegotiated
			}
			dec, err := frame.NewDecoder(outLayout.Format)
			if err != nil {
				return err
			}
			decoder = dec
			configured = true

			logger.Debugf("negotiated %s to %s", inLayout, outLayout)
			return nil
		}

		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			defer release()

			bounds := img.Bounds()
			if !configured || bounds.Dx() != inLayout.Width || bounds.Dy() != inLayout.Height {
				if err := negotiate(bounds.Dx(), bounds.Dy()); err != nil {
					return nil, func() {}, err
				}
			}

			in := inBuf.Bytes(inLayout.Size())
			if err := frame.EncodeBGRX(in, inLayout, img); err != nil {
				return nil, func() {}, err
			}
			out := outBuf.Bytes(outLayout.Size())
			if err := e.Transform(in, out); err != nil {
				if errors.Is(err, rgb2gray.ErrNotNegotiated) {
					configured = false
				}
				logger.Warnf("dropping frame: %v", err)
				return nil, func() {}, err
			}

			gray, _, err := decoder.Decode(out, outLayout)
			if err != nil {
				return nil, func() {}, err
			}
			if copyFrame {
				copied.StoreCopy(gray)
				gray = copied.Load()
			}
			return gray, func() {}, nil
		})
	}
}
