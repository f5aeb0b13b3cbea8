package sensor

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"uecv-sensor-go/internal/cloud"
)

// AssembleCloud merges projected geometry and packed color into the
// point-cloud wire message: row-major 16-byte records x,y,z,rgb at
// 4-byte float precision, little-endian, pixel (row=0,col=0) first.
func AssembleCloud(timestamp float64, frameID string, width, height int, xyz, rgb []float32) (*cloud.Cloud, error) {
	points := width * height
	if len(xyz) != 3*points {
		return nil, errors.Wrapf(ErrFrameMismatch, "geometry has %d values, want %d", len(xyz), 3*points)
	}
	if len(rgb) != points {
		return nil, errors.Wrapf(ErrFrameMismatch, "color has %d values, want %d", len(rgb), points)
	}

	out := cloud.New(timestamp, frameID, width, height)
	out.Data = make([]byte, points*cloud.PointStep)
	for i := 0; i < points; i++ {
		rec := out.Data[i*cloud.PointStep:]
		binary.LittleEndian.PutUint32(rec[0:4], math.Float32bits(xyz[3*i]))
		binary.LittleEndian.PutUint32(rec[4:8], math.Float32bits(xyz[3*i+1]))
		binary.LittleEndian.PutUint32(rec[8:12], math.Float32bits(xyz[3*i+2]))
		binary.LittleEndian.PutUint32(rec[12:16], math.Float32bits(rgb[i]))
	}
	return out, nil
}
