package camera

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"valid", Params{Width: 640, Height: 480, FocalLength: 320}, true},
		{"zero width", Params{Width: 0, Height: 480, FocalLength: 320}, false},
		{"negative height", Params{Width: 640, Height: -1, FocalLength: 320}, false},
		{"zero focal length", Params{Width: 640, Height: 480, FocalLength: 0}, false},
		{"negative focal length", Params{Width: 640, Height: 480, FocalLength: -2.5}, false},
	}
	for _, tc := range cases {
		err := tc.params.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("%s: expected ErrInvalidParams, got %v", tc.name, err)
			}
		}
	}
}

func TestNewIntrinsicsRejectsBadParams(t *testing.T) {
	if _, err := NewIntrinsics(Params{Width: 4, Height: 2, FocalLength: -1}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestCenterPixelGeometry(t *testing.T) {
	in, err := NewIntrinsics(Params{Width: 4, Height: 2, FocalLength: 1.0})
	if err != nil {
		t.Fatalf("NewIntrinsics: %v", err)
	}

	dx, dy := in.OffsetOverF(1, 2)
	if dx != 0 || dy != 0 {
		t.Fatalf("center pixel offsets: got (%v, %v), want (0, 0)", dx, dy)
	}
	if scale := in.AxialScale(1, 2); scale != 1 {
		t.Fatalf("center pixel axial scale: got %v, want 1", scale)
	}
}

func TestAxialScaleMatchesRadialDistance(t *testing.T) {
	p := Params{Width: 6, Height: 4, FocalLength: 2.5}
	in, err := NewIntrinsics(p)
	if err != nil {
		t.Fatalf("NewIntrinsics: %v", err)
	}

	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			dx := float64(col) - float64(p.Width)/2
			dy := float64(row) - float64(p.Height)/2
			r := math.Sqrt(dx*dx + dy*dy)
			want := 1 / math.Sqrt(1+(r/p.FocalLength)*(r/p.FocalLength))
			got := in.AxialScale(row, col)
			if math.Abs(got-want) > 1e-12 {
				t.Fatalf("axial scale at (%d,%d): got %v, want %v", row, col, got, want)
			}
		}
	}
}
