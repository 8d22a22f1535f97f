package frameproc

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/khaledhikmat/visiongrid/internal/frame"
	"github.com/natefinch/lumberjack"
)

// detectionLog mirrors the teacher's per-detector rotating log
// (pipeline/y5detector.go's y5DetectionLogger), generalized to the
// reference motion detector.
var detectionLog = &lumberjack.Logger{
	Filename:   "detections.log",
	MaxSize:    10, // MB
	MaxBackups: 5,
	MaxAge:     7, // days
	Compress:   true,
}

// MotionDetector is the reference detector: it holds the previous frame and
// reports a single simulated detection whenever the change heuristic fires.
// It never performs real computer vision — see the module's Non-goals.
type MotionDetector struct {
	initialized bool
	previous    *frameSnapshot
	counter     atomic.Int64
}

type frameSnapshot struct {
	size int
}

// NewMotionDetector constructs an uninitialized reference detector.
func NewMotionDetector() *MotionDetector {
	return &MotionDetector{}
}

func (d *MotionDetector) Name() string { return "BasicMotionDetector" }

func (d *MotionDetector) Initialize() error {
	d.initialized = true
	d.counter.Store(0)
	return nil
}

func (d *MotionDetector) Cleanup() {
	d.initialized = false
	d.previous = nil
}

func (d *MotionDetector) Detect(f frame.Frame) []Detection {
	if !d.initialized {
		return nil
	}

	if d.previous == nil {
		d.previous = &frameSnapshot{size: len(f.Data)}
		return nil
	}

	if !d.hasSignificantChange(len(f.Data)) {
		d.previous = &frameSnapshot{size: len(f.Data)}
		return nil
	}

	n := int(d.counter.Load())
	x := 100 + n%400
	y := 100 + (n/10)%200
	w := 80 + n%40
	h := 60 + n%30
	confidence := float32(0.7) + rand.Float32()*0.3

	det := d.makeDetection(x, y, w, h, confidence)
	d.counter.Add(1)
	d.previous = &frameSnapshot{size: len(f.Data)}

	detectionLog.Write([]byte(fmt.Sprintf("%d motion id=%s confidence=%.2f\n", time.Now().UnixMicro(), det.ID, det.Confidence)))

	return []Detection{det}
}

func (d *MotionDetector) hasSignificantChange(currentSize int) bool {
	if d.previous == nil {
		return true
	}
	if currentSize != d.previous.size {
		return true
	}
	return rand.Float64() < 0.3
}

func (d *MotionDetector) makeDetection(x, y, w, h int, confidence float32) Detection {
	now := time.Now()
	id := fmt.Sprintf("motion_%d_%d", now.UnixMicro(), d.counter.Load())
	return Detection{
		ID:          id,
		Type:        "motion",
		Confidence:  confidence,
		TimestampMs: now.UnixMilli(),
		BBox:        BoundingBox{X: x, Y: y, Width: w, Height: h},
		Metadata: map[string]string{
			"detector":       d.Name(),
			"algorithm":      "simulated",
			"confidence_str": fmt.Sprintf("%.3f", confidence),
		},
	}
}
