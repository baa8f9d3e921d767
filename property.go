package rgb2gray

import (
	"fmt"
	"reflect"
)

// Names of the element's properties
const (
	PropertyInvert = "invert"
	PropertyShift  = "shift"
)

// PropertySpec describes one settable property.
type PropertySpec struct {
	Name    string
	Blurb   string
	Default interface{}
	// Min and Max bound integer properties; nil otherwise.
	Min, Max interface{}
	// Mutable while frames are being converted
	MutablePlaying bool
}

var propertySpecs = []PropertySpec{
	{
		Name:           PropertyInvert,
		Blurb:          "Invert grayscale output",
		Default:        DefaultInvert,
		MutablePlaying: true,
	},
	{
		Name:           PropertyShift,
		Blurb:          "Shift grayscale output (wrapping around)",
		Default:        uint(DefaultShift),
		Min:            uint(0),
		Max:            uint(255),
		MutablePlaying: true,
	},
}

// Properties lists the properties of the element.
func Properties() []PropertySpec {
	return append([]PropertySpec(nil), propertySpecs...)
}

// SetProperty sets the named property. invert takes a bool; shift takes any
// integer kind within [0, 255].
func (e *Rgb2Gray) SetProperty(name string, value interface{}) error {
	switch name {
	case PropertyInvert:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a bool, got %T", ErrPropertyValue, name, value)
		}
		e.SetInvert(v)
	case PropertyShift:
		v, err := toShift(value)
		if err != nil {
			return err
		}
		e.SetShift(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return nil
}

// Property returns the current value of the named property. shift is
// returned as a uint.
func (e *Rgb2Gray) Property(name string) (interface{}, error) {
	s := e.settings.get()
	switch name {
	case PropertyInvert:
		return s.Invert, nil
	case PropertyShift:
		return uint(s.Shift), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
}

func toShift(value interface{}) (uint8, error) {
	v := reflect.ValueOf(value)
	var n int64
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > 255 {
			return 0, fmt.Errorf("%w: shift %d out of range [0, 255]", ErrPropertyValue, u)
		}
		n = int64(u)
	default:
		return 0, fmt.Errorf("%w: shift expects an integer, got %T", ErrPropertyValue, value)
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%w: shift %d out of range [0, 255]", ErrPropertyValue, n)
	}
	return uint8(n), nil
}
