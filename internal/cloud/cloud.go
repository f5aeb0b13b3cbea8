package cloud

// Field describes one channel of a point record, mirroring the ROS
// PointField layout convention.
type Field struct {
	Name     string `cbor:"name" json:"name"`
	Offset   uint32 `cbor:"offset" json:"offset"`
	Datatype uint8  `cbor:"datatype" json:"datatype"`
	Count    uint32 `cbor:"count" json:"count"`
}

// Float32 is the PointField datatype code for a 4-byte float.
const Float32 uint8 = 7

// PointStep is the byte stride of one x,y,z,rgb record.
const PointStep = 16

// Cloud is the outbound point-cloud message. Data is the row-major
// concatenation of 16-byte little-endian point records; the point at
// (row=0, col=0) comes first.
type Cloud struct {
	Type        string  `cbor:"type" json:"type"`
	Timestamp   float64 `cbor:"timestamp" json:"timestamp"`
	FrameID     string  `cbor:"frame_id" json:"frame_id"`
	Width       uint32  `cbor:"width" json:"width"`
	Height      uint32  `cbor:"height" json:"height"`
	Fields      []Field `cbor:"fields" json:"fields"`
	IsBigEndian bool    `cbor:"is_bigendian" json:"is_bigendian"`
	PointStep   uint32  `cbor:"point_step" json:"point_step"`
	RowStep     uint32  `cbor:"row_step" json:"row_step"`
	IsDense     bool    `cbor:"is_dense" json:"is_dense"`
	Data        []byte  `cbor:"data" json:"-"`
}

// XYZRGBFields is the fixed field layout of the published clouds.
func XYZRGBFields() []Field {
	return []Field{
		{Name: "x", Offset: 0, Datatype: Float32, Count: 1},
		{Name: "y", Offset: 4, Datatype: Float32, Count: 1},
		{Name: "z", Offset: 8, Datatype: Float32, Count: 1},
		{Name: "rgb", Offset: 12, Datatype: Float32, Count: 1},
	}
}

// New builds an empty dense cloud envelope for the given image size.
func New(timestamp float64, frameID string, width, height int) *Cloud {
	return &Cloud{
		Type:        "pointcloud",
		Timestamp:   timestamp,
		FrameID:     frameID,
		Width:       uint32(width),
		Height:      uint32(height),
		Fields:      XYZRGBFields(),
		IsBigEndian: false,
		PointStep:   PointStep,
		RowStep:     PointStep * uint32(width),
		IsDense:     true,
	}
}

// Points returns the number of point records in the payload.
func (c *Cloud) Points() int {
	return len(c.Data) / PointStep
}
