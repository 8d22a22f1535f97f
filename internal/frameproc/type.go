// Package frameproc applies a registry of detectors to captured frames and
// aggregates per-frame and rolling statistics.
package frameproc

import "github.com/khaledhikmat/visiongrid/internal/frame"

// BoundingBox is a pixel-space rectangle.
type BoundingBox struct {
	X, Y, Width, Height int
}

// Detection is a single bounding-box record produced by a Detector.
type Detection struct {
	ID          string
	Type        string
	Confidence  float32
	TimestampMs int64
	BBox        BoundingBox
	Metadata    map[string]string
}

// Result is the bounded outcome of running every registered detector over
// one frame.
type Result struct {
	Detections       []Detection
	ProcessingTimeMs int64
	Success          bool
	ErrorMessage     string
}

// Detector is the narrow capability set every pluggable analyzer satisfies.
// The registry owns detectors exclusively and iterates them in insertion
// order.
type Detector interface {
	Initialize() error
	Cleanup()
	Detect(f frame.Frame) []Detection
	Name() string
}

const (
	// DefaultMaxDetections bounds Result.Detections per frame.
	DefaultMaxDetections = 10
	minFrameWidth        = 32
	minFrameHeight       = 32
	maxFrameWidth        = 4096
	maxFrameHeight       = 4096
)
