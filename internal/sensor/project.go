package sensor

import (
	"github.com/pkg/errors"

	"uecv-sensor-go/internal/camera"
	"uecv-sensor-go/internal/types"
)

// ProjectDepth converts a ray-length depth image into camera-frame
// coordinates. The raw values measure the distance from the optical
// center along the viewing ray; dividing by sqrt(1+(r/f)^2) recovers
// the axial depth, after which x and y follow from similar triangles:
//
//	z = depth / sqrt(1 + (r/f)^2)
//	x = z * dx / f
//	y = z * dy / f
//
// The result is interleaved row-major xyz, len = 3*width*height. A
// zero depth projects to the origin; it is not an error.
func ProjectDepth(in *camera.Intrinsics, depth types.DepthImage) ([]float32, error) {
	width, height := in.Width(), in.Height()
	if depth.Width != width || depth.Height != height {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"depth %dx%d, camera %dx%d", depth.Width, depth.Height, width, height)
	}
	if len(depth.Data) != width*height {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"depth has %d values, want %d", len(depth.Data), width*height)
	}

	xyz := make([]float32, 3*width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := row*width + col
			z := float64(depth.Data[i]) * in.AxialScale(row, col)
			dx, dy := in.OffsetOverF(row, col)
			xyz[3*i] = float32(z * dx)
			xyz[3*i+1] = float32(z * dy)
			xyz[3*i+2] = float32(z)
		}
	}
	return xyz, nil
}
