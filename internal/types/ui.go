package types

// FrameSummary is the per-frame message broadcast to monitor clients.
type FrameSummary struct {
	Type      string  `json:"type"`
	Timestamp float64 `json:"timestamp"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Points    int     `json:"points"`
	ZMin      float64 `json:"z_min"`
	ZMax      float64 `json:"z_max"`
	ZMean     float64 `json:"z_mean"`
	Processed uint64  `json:"frames_processed_total"`
	Dropped   uint64  `json:"frames_dropped_total"`
}
