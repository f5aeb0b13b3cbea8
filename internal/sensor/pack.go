package sensor

import (
	"math"

	"github.com/pkg/errors"

	"uecv-sensor-go/internal/types"
)

// PackColors encodes each RGB triplet as the 24-bit integer
// r<<16|g<<8|b reinterpreted as a 32-bit float, the packed-RGB
// convention of point-cloud consumers. The reinterpretation is a bit
// pun, not a numeric conversion: downstream readers recover the exact
// triplet from the float's bits, so the returned values must never be
// used arithmetically.
func PackColors(color types.ColorImage) ([]float32, error) {
	if color.Width < 1 || color.Height < 1 {
		return nil, errors.Wrapf(ErrShapeMismatch, "color %dx%d", color.Width, color.Height)
	}
	if len(color.Pix) != 3*color.Width*color.Height {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"color has %d bytes, want %d (3 channels)", len(color.Pix), 3*color.Width*color.Height)
	}

	packed := make([]float32, color.Width*color.Height)
	for i := range packed {
		r := uint32(color.Pix[3*i])
		g := uint32(color.Pix[3*i+1])
		b := uint32(color.Pix[3*i+2])
		packed[i] = math.Float32frombits(r<<16 | g<<8 | b)
	}
	return packed, nil
}

// UnpackColor recovers the original triplet from a packed value.
func UnpackColor(packed float32) (r, g, b uint8) {
	bits := math.Float32bits(packed)
	return uint8(bits >> 16), uint8(bits >> 8), uint8(bits)
}
