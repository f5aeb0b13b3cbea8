package sensor

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"uecv-sensor-go/internal/camera"
	"uecv-sensor-go/internal/types"
)

func mustIntrinsics(t *testing.T, width, height int, f float64) *camera.Intrinsics {
	t.Helper()
	in, err := camera.NewIntrinsics(camera.Params{Width: width, Height: height, FocalLength: f})
	if err != nil {
		t.Fatalf("NewIntrinsics: %v", err)
	}
	return in
}

func depthImage(width, height int, fill func(row, col int) float32) types.DepthImage {
	data := make([]float32, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			data[row*width+col] = fill(row, col)
		}
	}
	return types.DepthImage{Width: width, Height: height, Data: data}
}

func TestProjectionPreservesRayLength(t *testing.T) {
	in := mustIntrinsics(t, 8, 6, 2.0)
	depth := depthImage(8, 6, func(row, col int) float32 {
		return 1.0 + float32(row*8+col)*0.25
	})

	xyz, err := ProjectDepth(in, depth)
	if err != nil {
		t.Fatalf("ProjectDepth: %v", err)
	}

	for i, d := range depth.Data {
		x := float64(xyz[3*i])
		y := float64(xyz[3*i+1])
		z := float64(xyz[3*i+2])
		rayLen := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(rayLen-float64(d)) > 1e-4 {
			t.Fatalf("pixel %d: ray length %v, want %v", i, rayLen, d)
		}
	}
}

func TestProjectionCenterPixelExact(t *testing.T) {
	in := mustIntrinsics(t, 4, 2, 1.0)
	depth := depthImage(4, 2, func(int, int) float32 { return 2.0 })

	xyz, err := ProjectDepth(in, depth)
	if err != nil {
		t.Fatalf("ProjectDepth: %v", err)
	}

	// pixel (row=1, col=2) sits on the optical axis
	i := 1*4 + 2
	if xyz[3*i] != 0 || xyz[3*i+1] != 0 {
		t.Fatalf("center pixel x,y: got (%v, %v), want (0, 0)", xyz[3*i], xyz[3*i+1])
	}
	if xyz[3*i+2] != 2.0 {
		t.Fatalf("center pixel z: got %v, want 2.0", xyz[3*i+2])
	}
}

func TestProjectionZeroDepth(t *testing.T) {
	in := mustIntrinsics(t, 5, 3, 1.5)
	depth := depthImage(5, 3, func(int, int) float32 { return 0 })

	xyz, err := ProjectDepth(in, depth)
	if err != nil {
		t.Fatalf("ProjectDepth: %v", err)
	}
	for i, v := range xyz {
		if v != 0 {
			t.Fatalf("value %d: got %v, want 0", i, v)
		}
	}
}

func TestProjectionShapeMismatch(t *testing.T) {
	in := mustIntrinsics(t, 4, 2, 1.0)
	depth := depthImage(4, 3, func(int, int) float32 { return 1 })

	if _, err := ProjectDepth(in, depth); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}

	short := types.DepthImage{Width: 4, Height: 2, Data: make([]float32, 7)}
	if _, err := ProjectDepth(in, short); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for short buffer, got %v", err)
	}
}
