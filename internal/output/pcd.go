package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"uecv-sensor-go/internal/cloud"
)

// WriteCloud dumps one assembled cloud as an ASCII PCD file named
// after the run timestamp and a running sequence number.
func WriteCloud(outputDir string, runTimestamp string, seq uint64, c *cloud.Cloud) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	filename := filepath.Join(outputDir, fmt.Sprintf("%s_cloud_%06d.pcd", runTimestamp, seq))
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := c.WritePCD(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Timestamp names a capture run.
func Timestamp() string {
	return time.Now().Format("20060102_150405")
}
