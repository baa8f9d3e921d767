package frame

import (
	"fmt"
)

func NewDecoder(f Format) (Decoder, error) {
	var decoder decoderFunc

	switch f {
	case FormatBGRX:
		decoder = decodeBGRX
	case FormatGRAY8:
		decoder = decodeGRAY8
	default:
		return nil, fmt.Errorf("%s is not supported", f)
	}

	return decoder, nil
}
