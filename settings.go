package rgb2gray

import "sync"

const (
	DefaultInvert       = false
	DefaultShift  uint8 = 0
)

// Settings are the runtime-tunable conversion parameters.
type Settings struct {
	// Invert maps every output value v to 255-v
	Invert bool
	// Shift is added to the luma value, wrapping around at 256
	Shift uint8
}

// DefaultSettings returns the settings of a newly created element.
func DefaultSettings() Settings {
	return Settings{
		Invert: DefaultInvert,
		Shift:  DefaultShift,
	}
}

// settingsStore guards Settings shared by the control path and the
// streaming path. Readers get a snapshot, so a change applies from the next
// frame on.
type settingsStore struct {
	mu sync.Mutex
	s  Settings
}

func (st *settingsStore) get() Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s
}

func (st *settingsStore) set(s Settings) {
	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
}

// setInvert stores v and returns the previous value.
func (st *settingsStore) setInvert(v bool) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	old := st.s.Invert
	st.s.Invert = v
	return old
}

// setShift stores v and returns the previous value.
func (st *settingsStore) setShift(v uint8) uint8 {
	st.mu.Lock()
	defer st.mu.Unlock()
	old := st.s.Shift
	st.s.Shift = v
	return old
}
