// Package rgb2gray implements a video filter element converting packed BGRx
// frames to grayscale, either as GRAY8 or as BGRx with three equal colour
// channels. The luma of every pixel can be shifted, wrapping around, and
// inverted while frames are flowing.
//
// The element is driven by a host pipeline through the Element interface:
// caps are negotiated with TransformCaps and SetCaps on the control path,
// frames are converted with Transform on the streaming path, and Stop drops
// the negotiated layouts. Settings may change at any time from yet another
// goroutine.
package rgb2gray

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/logging"

	ilogging "github.com/mediafilters/rgb2gray/internal/logging"
	"github.com/mediafilters/rgb2gray/pkg/caps"
	"github.com/mediafilters/rgb2gray/pkg/frame"
)

// Element is the interface a host pipeline drives a transform element
// through. The element never calls back into the host.
type Element interface {
	// TransformCaps returns the caps the opposite pad has to accept given
	// caps c on the pad named by dir, restricted by filter when it's not nil.
	TransformCaps(dir Direction, c, filter caps.Caps) (caps.Caps, bool)
	// SetCaps configures the element for the agreed input and output caps.
	SetCaps(in, out caps.Caps) error
	// UnitSize returns the size of one frame described by c.
	UnitSize(c caps.Caps) (int, error)
	// Transform converts one input frame into a pre-allocated output frame.
	Transform(in, out []byte) error
	// Stop drops the negotiated state.
	Stop() error
}

var _ Element = &Rgb2Gray{}

// Options stores parameters used by Rgb2Gray.
type Options struct {
	loggerFactory logging.LoggerFactory
	align         frame.RowAligner
	settings      Settings
}

// Option is a type of Rgb2Gray functional option.
type Option func(*Options)

// WithLoggerFactory specifies the factory the element creates its logger
// from.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(o *Options) {
		o.loggerFactory = f
	}
}

// WithRowAligner specifies the host's row alignment rule. Negotiated
// layouts get their stride from it.
func WithRowAligner(align frame.RowAligner) Option {
	return func(o *Options) {
		o.align = align
	}
}

// WithSettings specifies the initial settings.
func WithSettings(s Settings) Option {
	return func(o *Options) {
		o.settings = s
	}
}

// Rgb2Gray is the BGRx to grayscale converter element. It is safe for
// concurrent use: negotiation, settings changes and frame conversion may
// happen on different goroutines.
type Rgb2Gray struct {
	id    string
	log   logging.LeveledLogger
	align frame.RowAligner

	settings settingsStore

	mu     sync.RWMutex
	status State
	neg    *negotiation
}

// negotiation is the state of one negotiation epoch. It is replaced as a
// whole, never modified.
type negotiation struct {
	in, out frame.Layout
	conv    rowConverter
}

// New creates an unconfigured element.
func New(opts ...Option) *Rgb2Gray {
	o := Options{
		loggerFactory: ilogging.Factory(),
		align:         frame.NoAlign,
		settings:      DefaultSettings(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.align == nil {
		o.align = frame.NoAlign
	}

	e := &Rgb2Gray{
		id:     uuid.New().String(),
		log:    o.loggerFactory.NewLogger("rgb2gray"),
		align:  o.align,
		status: StateUnconfigured,
	}
	e.settings.set(o.settings)
	return e
}

// ID returns the element's unique identifier.
func (e *Rgb2Gray) ID() string {
	return e.id
}

// Status returns the current negotiation state.
func (e *Rgb2Gray) Status() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Layouts returns the negotiated input and output layouts. ok is false
// when the element isn't configured.
func (e *Rgb2Gray) Layouts() (in, out frame.Layout, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.neg == nil {
		return frame.Layout{}, frame.Layout{}, false
	}
	return e.neg.in, e.neg.out, true
}

// Settings returns a snapshot of the current settings.
func (e *Rgb2Gray) Settings() Settings {
	return e.settings.get()
}

// SetInvert changes whether output values are inverted. It takes effect
// from the next frame.
func (e *Rgb2Gray) SetInvert(invert bool) {
	old := e.settings.setInvert(invert)
	e.log.Infof("%s: Changing invert from %t to %t", e.id, old, invert)
}

// SetShift changes the wrapping shift added to luma values. It takes
// effect from the next frame.
func (e *Rgb2Gray) SetShift(shift uint8) {
	old := e.settings.setShift(shift)
	e.log.Infof("%s: Changing shift from %d to %d", e.id, old, shift)
}

// TransformCaps implements Element.
func (e *Rgb2Gray) TransformCaps(dir Direction, c, filter caps.Caps) (caps.Caps, bool) {
	other, ok := transformCaps(dir, c, filter)
	if !ok {
		e.log.Warnf("%s: can't transform caps in direction %s", e.id, dir)
		return nil, false
	}
	e.log.Debugf("%s: Transformed caps from %s to %s in direction %s", e.id, c, other, dir)
	return other, true
}

// UnitSize implements Element.
func (e *Rgb2Gray) UnitSize(c caps.Caps) (int, error) {
	l, err := resolveLayout(c, e.align)
	if err != nil {
		return 0, err
	}
	return l.Size(), nil
}

// SetCaps implements Element. On failure the element keeps its previous
// state.
func (e *Rgb2Gray) SetCaps(in, out caps.Caps) error {
	if !caps.CanIntersect(in, SinkTemplate()) {
		return fmt.Errorf("%w: input caps %s not accepted", ErrUnparsableCaps, in)
	}
	if !caps.CanIntersect(out, SrcTemplate()) {
		return fmt.Errorf("%w: output caps %s not accepted", ErrUnparsableCaps, out)
	}

	inLayout, err := resolveLayout(in, e.align)
	if err != nil {
		return fmt.Errorf("failed to parse input caps: %w", err)
	}
	outLayout, err := resolveLayout(out, e.align)
	if err != nil {
		return fmt.Errorf("failed to parse output caps: %w", err)
	}
	if inLayout.Width != outLayout.Width || inLayout.Height != outLayout.Height {
		return fmt.Errorf("%w: input %s and output %s differ in size", ErrUnparsableCaps, inLayout, outLayout)
	}
	conv, err := converterFor(outLayout.Format)
	if err != nil {
		return err
	}

	neg := &negotiation{in: inLayout, out: outLayout, conv: conv}

	e.mu.Lock()
	defer e.mu.Unlock()
	err = e.status.Update(StateConfigured, func() error {
		e.neg = neg
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Debugf("%s: Configured for caps %s to %s", e.id, in, out)
	return nil
}

// Transform implements Element. Settings are read once, before the first
// pixel, and the negotiated layouts are held for the whole frame.
func (e *Rgb2Gray) Transform(in, out []byte) error {
	s := e.settings.get()

	e.mu.RLock()
	defer e.mu.RUnlock()
	neg := e.neg
	if neg == nil {
		return ErrNotNegotiated
	}

	return convert(neg.conv,
		FrameView{Data: in, Layout: neg.in},
		FrameView{Data: out, Layout: neg.out},
		s,
	)
}

// Stop implements Element. It is idempotent; a Transform already running
// finishes first.
func (e *Rgb2Gray) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.status.Update(StateStopped, func() error {
		e.neg = nil
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Infof("%s: Stopped", e.id)
	return nil
}
