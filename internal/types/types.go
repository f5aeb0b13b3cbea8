package types

// DepthImage holds per-pixel ray lengths in row-major order, i.e. the
// Euclidean distance from the optical center to the scene point along
// the viewing ray, not the axial depth.
type DepthImage struct {
	Width  int
	Height int
	Data   []float32
}

// ColorImage holds interleaved row-major RGB triplets.
type ColorImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// RawFrame is one decoded color+depth pair from the camera stream.
// Timestamp is in seconds since the Unix epoch and is copied verbatim
// into the published point cloud.
type RawFrame struct {
	Timestamp float64
	Color     ColorImage
	Depth     DepthImage
}

// RawMessage is a single inbound stream message. Frame is only valid
// when Type == "frame"; Meta carries the payload of any other message
// kind. Payload preserves the raw CBOR bytes for recording.
type RawMessage struct {
	Type    string
	Frame   RawFrame
	Meta    map[string]any
	Payload []byte
}
