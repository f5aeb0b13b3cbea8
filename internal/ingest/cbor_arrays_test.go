package ingest

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

func float32LEBytes(values ...float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func TestDecodeDepthArray(t *testing.T) {
	value := cbor.Tag{
		Number: tagMultiDimArray,
		Content: []any{
			[]any{2, 3},
			cbor.Tag{
				Number:  tagFloat32LE,
				Content: float32LEBytes(1, 2, 3, 4, 5, 6),
			},
		},
	}

	depth, err := decodeDepthArray(value)
	if err != nil {
		t.Fatalf("decodeDepthArray: %v", err)
	}
	if depth.Width != 3 || depth.Height != 2 {
		t.Fatalf("shape: got %dx%d, want 3x2", depth.Width, depth.Height)
	}
	for i, want := range []float32{1, 2, 3, 4, 5, 6} {
		if depth.Data[i] != want {
			t.Fatalf("value %d: got %v, want %v", i, depth.Data[i], want)
		}
	}
}

func TestDecodeDepthArrayElementCountMismatch(t *testing.T) {
	value := cbor.Tag{
		Number: tagMultiDimArray,
		Content: []any{
			[]any{2, 3},
			cbor.Tag{
				Number:  tagFloat32LE,
				Content: float32LEBytes(1, 2, 3, 4, 5),
			},
		},
	}

	if _, err := decodeDepthArray(value); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("expected ErrBadFrame, got %v", err)
	}
}

func TestDecodeColorArray(t *testing.T) {
	value := cbor.Tag{
		Number: tagMultiDimArray,
		Content: []any{
			[]any{1, 2, 3},
			cbor.Tag{
				Number:  tagUint8,
				Content: []byte{255, 0, 0, 0, 255, 0},
			},
		},
	}

	color, err := decodeColorArray(value)
	if err != nil {
		t.Fatalf("decodeColorArray: %v", err)
	}
	if color.Width != 2 || color.Height != 1 {
		t.Fatalf("shape: got %dx%d, want 2x1", color.Width, color.Height)
	}
	if color.Pix[0] != 255 || color.Pix[4] != 255 {
		t.Fatalf("unexpected pixel values: %v", color.Pix)
	}
}

func TestDecodeColorArrayWrongChannels(t *testing.T) {
	value := cbor.Tag{
		Number: tagMultiDimArray,
		Content: []any{
			[]any{1, 2, 4},
			cbor.Tag{
				Number:  tagUint8,
				Content: []byte{0, 0, 0, 0, 0, 0, 0, 0},
			},
		},
	}

	if _, err := decodeColorArray(value); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("expected ErrBadFrame, got %v", err)
	}
}

func TestSplitMultiDimRejectsOtherTags(t *testing.T) {
	if _, _, err := splitMultiDim(cbor.Tag{Number: 41, Content: []any{}}); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("expected ErrBadFrame, got %v", err)
	}
	if _, _, err := splitMultiDim("not a tag"); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("expected ErrBadFrame, got %v", err)
	}
}
