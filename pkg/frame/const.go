package frame

// Format names a packed pixel layout. The values match the format strings
// carried in raw video caps.
type Format string

const (
	// FormatBGRX is 32-bit packed BGR. The fourth byte of every pixel is
	// padding and carries no data.
	FormatBGRX Format = "BGRx"
	// FormatGRAY8 is a single 8-bit luma channel
	FormatGRAY8 Format = "GRAY8"
)

// BytesPerPixel returns the size of one pixel of f. ok is false for
// formats this package doesn't know.
func BytesPerPixel(f Format) (n int, ok bool) {
	switch f {
	case FormatBGRX:
		return 4, true
	case FormatGRAY8:
		return 1, true
	}
	return 0, false
}

// Supported reports whether f is one of the known packed formats.
func Supported(f Format) bool {
	_, ok := BytesPerPixel(f)
	return ok
}
