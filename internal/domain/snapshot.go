package domain

import "time"

// DisplayStats are the per-category counts shown in the side panel
type DisplayStats struct {
	School     int `json:"school"`
	ClosedRoad int `json:"closed_road"`
	OpenRoad   int `json:"open_road"`
}

// Palette is the color theme of the air quality card
type Palette struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// AirQuality is a synthetic air quality reading
type AirQuality struct {
	Index   int     `json:"index"`
	Level   string  `json:"level"` // "excellent" or "good"
	Label   string  `json:"label"`
	Palette Palette `json:"palette"`
}

// Snapshot is the complete derived state for one hour change.
// Every field is computed from the same Resolution.
type Snapshot struct {
	Version      uint64       `json:"version"`
	Hour         float64      `json:"hour"`
	Clock        string       `json:"clock"`
	Regime       Regime       `json:"regime"`
	Restricted   bool         `json:"restricted"`
	Status       string       `json:"status"`
	Stats        DisplayStats `json:"stats"`
	AirQuality   AirQuality   `json:"air_quality"`
	ActiveLayers int          `json:"active_layers"`
	Loaded       bool         `json:"loaded"`
	Timestamp    time.Time    `json:"timestamp"`
}

// SnapshotResponse wraps a snapshot with metadata
type SnapshotResponse struct {
	Data    Snapshot `json:"data"`
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
}
