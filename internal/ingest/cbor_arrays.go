package ingest

import (
	"encoding/binary"
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"uecv-sensor-go/internal/types"
)

// RFC 8746 tags used by the camera stream.
const (
	tagMultiDimArray = 40
	tagUint8         = 64
	tagFloat32LE     = 85
)

// ErrBadFrame marks a raw frame buffer that could not be decoded into
// the expected color/depth shapes. Per-frame, never fatal.
var ErrBadFrame = errors.New("malformed raw frame")

// decodeDepthArray decodes a tag-40 multidimensional array of shape
// (height, width) with little-endian float32 elements.
func decodeDepthArray(value any) (types.DepthImage, error) {
	dims, content, err := splitMultiDim(value)
	if err != nil {
		return types.DepthImage{}, err
	}
	if len(dims) != 2 {
		return types.DepthImage{}, errors.Wrapf(ErrBadFrame, "depth has %d dimensions, want 2", len(dims))
	}
	height, width := dims[0], dims[1]

	tag, ok := content.(cbor.Tag)
	if !ok || tag.Number != tagFloat32LE {
		return types.DepthImage{}, errors.Wrap(ErrBadFrame, "depth payload is not a float32 typed array")
	}
	raw, ok := tag.Content.([]byte)
	if !ok {
		return types.DepthImage{}, errors.Wrap(ErrBadFrame, "depth typed array has no byte content")
	}
	if len(raw) != 4*width*height {
		return types.DepthImage{}, errors.Wrapf(ErrBadFrame,
			"depth payload is %d bytes, want %d for %dx%d", len(raw), 4*width*height, width, height)
	}

	data := make([]float32, width*height)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
	}
	return types.DepthImage{Width: width, Height: height, Data: data}, nil
}

// decodeColorArray decodes a tag-40 multidimensional array of shape
// (height, width, 3) with uint8 elements.
func decodeColorArray(value any) (types.ColorImage, error) {
	dims, content, err := splitMultiDim(value)
	if err != nil {
		return types.ColorImage{}, err
	}
	if len(dims) != 3 || dims[2] != 3 {
		return types.ColorImage{}, errors.Wrapf(ErrBadFrame, "color dimensions %v, want (h, w, 3)", dims)
	}
	height, width := dims[0], dims[1]

	tag, ok := content.(cbor.Tag)
	if !ok || tag.Number != tagUint8 {
		return types.ColorImage{}, errors.Wrap(ErrBadFrame, "color payload is not a uint8 typed array")
	}
	raw, ok := tag.Content.([]byte)
	if !ok {
		return types.ColorImage{}, errors.Wrap(ErrBadFrame, "color typed array has no byte content")
	}
	if len(raw) != 3*width*height {
		return types.ColorImage{}, errors.Wrapf(ErrBadFrame,
			"color payload is %d bytes, want %d for %dx%dx3", len(raw), 3*width*height, width, height)
	}

	pix := make([]uint8, len(raw))
	copy(pix, raw)
	return types.ColorImage{Width: width, Height: height, Pix: pix}, nil
}

func splitMultiDim(value any) ([]int, any, error) {
	tag, ok := value.(cbor.Tag)
	if !ok || tag.Number != tagMultiDimArray {
		return nil, nil, errors.Wrap(ErrBadFrame, "expected multidim tag 40")
	}
	items, ok := tag.Content.([]any)
	if !ok || len(items) != 2 {
		return nil, nil, errors.Wrap(ErrBadFrame, "invalid multidim array content")
	}
	dimsRaw, ok := items[0].([]any)
	if !ok || len(dimsRaw) == 0 {
		return nil, nil, errors.Wrap(ErrBadFrame, "invalid multidim dimensions")
	}
	dims := make([]int, len(dimsRaw))
	for i, d := range dimsRaw {
		n, err := toInt(d)
		if err != nil {
			return nil, nil, errors.Wrap(ErrBadFrame, err.Error())
		}
		if n < 1 {
			return nil, nil, errors.Wrapf(ErrBadFrame, "non-positive dimension %d", n)
		}
		dims[i] = n
	}
	return dims, items[1], nil
}
