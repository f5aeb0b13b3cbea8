package sensor

import (
	"encoding/binary"
	"math"
	"sync"

	"uecv-sensor-go/internal/cloud"
	"uecv-sensor-go/internal/types"
)

// Stats accumulates per-run counters and a summary of the most recent
// frame for the monitor UI. Safe for concurrent use by the frame
// workers.
type Stats struct {
	mu            sync.Mutex
	processed     uint64
	dropped       uint64
	lastTimestamp float64
	lastPoints    int
	lastWidth     int
	lastHeight    int
	zMin          float64
	zMax          float64
	zMean         float64
	hasFrame      bool
}

func NewStats() *Stats {
	return &Stats{}
}

// RecordDrop counts a frame that failed the per-frame transform.
func (s *Stats) RecordDrop() {
	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()
}

// RecordFrame folds one published cloud into the counters and scans
// its axial depth channel for the last-frame summary.
func (s *Stats) RecordFrame(out *cloud.Cloud) {
	points := out.Points()
	zMin := math.Inf(1)
	zMax := math.Inf(-1)
	sum := 0.0
	for i := 0; i < points; i++ {
		rec := out.Data[i*cloud.PointStep:]
		z := float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[8:12])))
		if z < zMin {
			zMin = z
		}
		if z > zMax {
			zMax = z
		}
		sum += z
	}
	mean := 0.0
	if points > 0 {
		mean = sum / float64(points)
	} else {
		zMin, zMax = 0, 0
	}

	s.mu.Lock()
	s.processed++
	s.lastTimestamp = out.Timestamp
	s.lastPoints = points
	s.lastWidth = int(out.Width)
	s.lastHeight = int(out.Height)
	s.zMin, s.zMax, s.zMean = zMin, zMax, mean
	s.hasFrame = true
	s.mu.Unlock()
}

// Snapshot returns the current frame summary, or false if no frame
// has been processed yet.
func (s *Stats) Snapshot() (types.FrameSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasFrame {
		return types.FrameSummary{}, false
	}
	return types.FrameSummary{
		Type:      "frame_summary",
		Timestamp: s.lastTimestamp,
		Width:     s.lastWidth,
		Height:    s.lastHeight,
		Points:    s.lastPoints,
		ZMin:      s.zMin,
		ZMax:      s.zMax,
		ZMean:     s.zMean,
		Processed: s.processed,
		Dropped:   s.dropped,
	}, true
}

// Counters returns the processed/dropped totals.
func (s *Stats) Counters() (processed, dropped uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed, s.dropped
}
