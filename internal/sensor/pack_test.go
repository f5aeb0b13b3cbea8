package sensor

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"uecv-sensor-go/internal/types"
)

func TestPackColorsBijection(t *testing.T) {
	samples := []uint8{0, 1, 63, 127, 128, 200, 254, 255}
	pix := make([]uint8, 0, 3*len(samples)*len(samples))
	var want [][3]uint8
	for _, r := range samples {
		for _, g := range samples {
			b := r ^ g
			pix = append(pix, r, g, b)
			want = append(want, [3]uint8{r, g, b})
		}
	}
	img := types.ColorImage{Width: len(want), Height: 1, Pix: pix}

	packed, err := PackColors(img)
	if err != nil {
		t.Fatalf("PackColors: %v", err)
	}
	if len(packed) != len(want) {
		t.Fatalf("packed length %d, want %d", len(packed), len(want))
	}

	for i, rgb := range want {
		bits := math.Float32bits(packed[i])
		c := uint32(rgb[0])<<16 | uint32(rgb[1])<<8 | uint32(rgb[2])
		if bits != c {
			t.Fatalf("pixel %d: bits %#x, want %#x", i, bits, c)
		}
		r, g, b := UnpackColor(packed[i])
		if r != rgb[0] || g != rgb[1] || b != rgb[2] {
			t.Fatalf("pixel %d: unpacked (%d,%d,%d), want (%d,%d,%d)", i, r, g, b, rgb[0], rgb[1], rgb[2])
		}
	}
}

func TestPackColorsRedBitPattern(t *testing.T) {
	img := types.ColorImage{Width: 1, Height: 1, Pix: []uint8{255, 0, 0}}
	packed, err := PackColors(img)
	if err != nil {
		t.Fatalf("PackColors: %v", err)
	}
	if bits := math.Float32bits(packed[0]); bits != 0xFF0000 {
		t.Fatalf("red bit pattern: got %#x, want 0xff0000", bits)
	}
}

func TestPackColorsShapeMismatch(t *testing.T) {
	img := types.ColorImage{Width: 2, Height: 2, Pix: make([]uint8, 11)}
	if _, err := PackColors(img); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}

	empty := types.ColorImage{Width: 0, Height: 2, Pix: nil}
	if _, err := PackColors(empty); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for empty image, got %v", err)
	}
}
