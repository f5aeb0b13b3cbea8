package sensor

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"uecv-sensor-go/internal/camera"
	"uecv-sensor-go/internal/cloud"
	"uecv-sensor-go/internal/types"
)

// Model is a closed enumeration of the implemented sensor models.
// Adding a model means adding a constant and its branch in apply, not
// growing a runtime lookup table.
type Model string

// GroundTruth passes the simulated measurements through unmodified.
const GroundTruth Model = "ground_truth"

var implementedModels = []Model{GroundTruth}

// ParseModel validates a configured sensor model name.
func ParseModel(name string) (Model, error) {
	for _, m := range implementedModels {
		if name == string(m) {
			return m, nil
		}
	}
	names := make([]string, len(implementedModels))
	for i, m := range implementedModels {
		names[i] = "'" + string(m) + "'"
	}
	sort.Strings(names)
	return "", errors.Wrapf(ErrUnknownModel,
		"%q, implemented models are: %s", name, strings.Join(names, ", "))
}

// Sensor converts raw color+depth frames into point clouds. It is
// stateless across frames: every Process call is an independent
// transform of one decoded input pair.
type Sensor struct {
	model   Model
	frameID string
	in      *camera.Intrinsics
}

func New(model Model, frameID string, in *camera.Intrinsics) (*Sensor, error) {
	if _, err := ParseModel(string(model)); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errors.Wrap(ErrNotReady, "camera intrinsics missing")
	}
	return &Sensor{model: model, frameID: frameID, in: in}, nil
}

func (s *Sensor) Model() Model          { return s.model }
func (s *Sensor) Params() camera.Params { return s.in.Params() }

// Process runs the full per-frame transform: frame consistency check,
// depth projection, sensor model, color packing, assembly. Geometry
// and color always come from the same input pair.
func (s *Sensor) Process(raw types.RawFrame) (*cloud.Cloud, error) {
	if raw.Color.Width != raw.Depth.Width || raw.Color.Height != raw.Depth.Height {
		return nil, errors.Wrapf(ErrFrameMismatch,
			"color %dx%d, depth %dx%d",
			raw.Color.Width, raw.Color.Height, raw.Depth.Width, raw.Depth.Height)
	}

	xyz, err := ProjectDepth(s.in, raw.Depth)
	if err != nil {
		return nil, err
	}
	xyz = s.apply(xyz)

	rgb, err := PackColors(raw.Color)
	if err != nil {
		return nil, err
	}

	return AssembleCloud(raw.Timestamp, s.frameID, s.in.Width(), s.in.Height(), xyz, rgb)
}

// apply runs the selected sensor model over the projected geometry.
func (s *Sensor) apply(xyz []float32) []float32 {
	switch s.model {
	case GroundTruth:
		return xyz
	default:
		// unreachable, the constructor rejects unknown models
		return xyz
	}
}
