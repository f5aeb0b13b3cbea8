package cloud

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
)

// WritePCD writes the cloud as an ASCII PCD file. The rgb channel is
// written as the raw 24-bit integer rather than the float bit pattern,
// since printing the punned float in decimal would not round-trip.
func (c *Cloud) WritePCD(w io.Writer) error {
	if len(c.Data)%PointStep != 0 {
		return errors.Errorf("payload size %d is not a multiple of the point stride", len(c.Data))
	}

	points := c.Points()
	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "# .PCD v0.7 - Point Cloud Data file format\n")
	fmt.Fprintf(buf, "VERSION 0.7\n")
	fmt.Fprintf(buf, "FIELDS x y z rgb\n")
	fmt.Fprintf(buf, "SIZE 4 4 4 4\n")
	fmt.Fprintf(buf, "TYPE F F F U\n")
	fmt.Fprintf(buf, "COUNT 1 1 1 1\n")
	fmt.Fprintf(buf, "WIDTH %d\n", c.Width)
	fmt.Fprintf(buf, "HEIGHT %d\n", c.Height)
	fmt.Fprintf(buf, "VIEWPOINT 0 0 0 1 0 0 0\n")
	fmt.Fprintf(buf, "POINTS %d\n", points)
	fmt.Fprintf(buf, "DATA ascii\n")

	for i := 0; i < points; i++ {
		rec := c.Data[i*PointStep : (i+1)*PointStep]
		x := math.Float32frombits(binary.LittleEndian.Uint32(rec[0:4]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(rec[4:8]))
		z := math.Float32frombits(binary.LittleEndian.Uint32(rec[8:12]))
		rgb := binary.LittleEndian.Uint32(rec[12:16])
		fmt.Fprintf(buf, "%v %v %v %d\n", x, y, z, rgb)
	}
	return buf.Flush()
}
