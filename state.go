package rgb2gray

import "fmt"

// State represents the element's negotiation state
type State string

const (
	// StateUnconfigured means no caps have been agreed on yet. Frames can't
	// be converted in this state.
	StateUnconfigured State = "unconfigured"
	// StateConfigured means both layouts are known and frames may be
	// converted.
	StateConfigured State = "configured"
	// StateStopped means the negotiated layouts were dropped. A fresh
	// negotiation moves the element back to StateConfigured.
	StateStopped State = "stopped"
)

// Update updates current state, s, to next. If f fails to execute,
// s will stay unchanged. Otherwise, s will be updated to next
func (s *State) Update(next State, f func() error) error {
	type checkFunc func() error
	m := map[State]checkFunc{
		StateUnconfigured: s.toUnconfigured,
		StateConfigured:   s.toConfigured,
		StateStopped:      s.toStopped,
	}

	check, ok := m[next]
	if !ok {
		return fmt.Errorf("invalid state: unknown state %q", next)
	}
	if err := check(); err != nil {
		return err
	}

	err := f()
	if err == nil {
		*s = next
	}
	return err
}

func (s *State) toUnconfigured() error {
	return fmt.Errorf("invalid state: can't go back to %s from %s", StateUnconfigured, *s)
}

// Renegotiation is legal from every state.
func (s *State) toConfigured() error {
	return nil
}

func (s *State) toStopped() error {
	return nil
}
