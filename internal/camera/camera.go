package camera

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidParams is returned when camera parameters fail validation.
var ErrInvalidParams = errors.New("invalid camera parameters")

// Params are the pinhole camera parameters delivered by the simulated
// camera at startup. Immutable once the node is running.
type Params struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FocalLength float64 `json:"focal_length"`
}

func (p Params) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return errors.Wrapf(ErrInvalidParams, "image size %dx%d", p.Width, p.Height)
	}
	if p.FocalLength <= 0 {
		return errors.Wrapf(ErrInvalidParams, "focal length %v", p.FocalLength)
	}
	return nil
}

// Intrinsics caches the resolution-dependent pixel geometry of a
// pinhole camera: per-pixel offsets from the image center and the
// scale that converts a ray length into axial depth. The cache is
// computed once and never mutated.
type Intrinsics struct {
	params Params

	// dxOverF[col] = (col - width/2) / f, dyOverF[row] = (row - height/2) / f.
	dxOverF []float64
	dyOverF []float64

	// axialScale[row*width+col] = 1 / sqrt(1 + (r/f)^2) where
	// r = sqrt(dx^2 + dy^2) is the radial pixel distance.
	axialScale []float64
}

func NewIntrinsics(p Params) (*Intrinsics, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	centerX := float64(p.Width) / 2
	centerY := float64(p.Height) / 2
	f := p.FocalLength

	dxOverF := make([]float64, p.Width)
	for col := 0; col < p.Width; col++ {
		dxOverF[col] = (float64(col) - centerX) / f
	}
	dyOverF := make([]float64, p.Height)
	for row := 0; row < p.Height; row++ {
		dyOverF[row] = (float64(row) - centerY) / f
	}

	axialScale := make([]float64, p.Width*p.Height)
	for row := 0; row < p.Height; row++ {
		dy := dyOverF[row]
		for col := 0; col < p.Width; col++ {
			dx := dxOverF[col]
			axialScale[row*p.Width+col] = 1 / math.Sqrt(1+dx*dx+dy*dy)
		}
	}

	return &Intrinsics{
		params:     p,
		dxOverF:    dxOverF,
		dyOverF:    dyOverF,
		axialScale: axialScale,
	}, nil
}

func (in *Intrinsics) Params() Params { return in.params }
func (in *Intrinsics) Width() int     { return in.params.Width }
func (in *Intrinsics) Height() int    { return in.params.Height }

// AxialScale returns the ray-length to axial-depth conversion factor
// for the pixel at (row, col).
func (in *Intrinsics) AxialScale(row, col int) float64 {
	return in.axialScale[row*in.params.Width+col]
}

// OffsetOverF returns (dx/f, dy/f) for the pixel at (row, col).
func (in *Intrinsics) OffsetOverF(row, col int) (float64, float64) {
	return in.dxOverF[col], in.dyOverF[row]
}
