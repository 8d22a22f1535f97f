package frameproc

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/khaledhikmat/visiongrid/internal/frame"
	"github.com/khaledhikmat/visiongrid/internal/lgr"
)

// Processor owns a registry of detectors and runs all of them over each
// validated frame, bounding the aggregate detection count per frame and
// accumulating latency/throughput statistics.
type Processor struct {
	mu                sync.Mutex
	detectors         []Detector
	maxDetections     int
	totalFrames       atomic.Int64
	totalDetections   atomic.Int64
	totalProcessingMs atomic.Int64
}

// NewProcessor constructs a Processor with the reference motion detector
// already registered, mirroring FrameProcessor::Initialize in the original
// implementation.
func NewProcessor() *Processor {
	p := &Processor{maxDetections: DefaultMaxDetections}
	p.AddDetector(NewMotionDetector())
	return p
}

// AddDetector initializes d and appends it to the registry. A detector that
// fails to initialize is silently dropped.
func (p *Processor) AddDetector(d Detector) {
	if d == nil {
		return
	}
	if err := d.Initialize(); err != nil {
		lgr.Logger.Warn("detector failed to initialize, dropping", slog.String("detector", d.Name()), slog.Any("error", err))
		return
	}
	p.mu.Lock()
	p.detectors = append(p.detectors, d)
	p.mu.Unlock()
}

// RemoveDetector removes every registered detector whose name equals name.
func (p *Processor) RemoveDetector(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.detectors[:0]
	for _, d := range p.detectors {
		if d.Name() == name {
			d.Cleanup()
			continue
		}
		kept = append(kept, d)
	}
	p.detectors = kept
}

// DetectorNames returns the registered detector names in insertion order.
func (p *Processor) DetectorNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.detectors))
	for _, d := range p.detectors {
		names = append(names, d.Name())
	}
	return names
}

// SetMaxDetectionsPerFrame overrides the per-frame detection cap.
func (p *Processor) SetMaxDetectionsPerFrame(max int) {
	if max < 1 {
		max = 1
	}
	p.mu.Lock()
	p.maxDetections = max
	p.mu.Unlock()
}

// ProcessFrame validates f and runs every registered detector over it,
// stopping as soon as the aggregate detection count reaches the cap.
func (p *Processor) ProcessFrame(f frame.Frame) Result {
	start := time.Now()

	if err := p.validate(f); err != nil {
		return Result{Success: false, ErrorMessage: err.Error()}
	}

	p.mu.Lock()
	detectors := append([]Detector(nil), p.detectors...)
	maxDetections := p.maxDetections
	p.mu.Unlock()

	result := Result{Success: true}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result = Result{Success: false, ErrorMessage: fmt.Sprintf("processing error: %v", r)}
			}
		}()

		for _, d := range detectors {
			if len(result.Detections) >= maxDetections {
				break
			}
			for _, det := range d.Detect(f) {
				if len(result.Detections) >= maxDetections {
					break
				}
				result.Detections = append(result.Detections, det)
			}
		}
	}()

	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	p.updateStats(result.ProcessingTimeMs, len(result.Detections))

	return result
}

func (p *Processor) validate(f frame.Frame) error {
	if len(f.Data) == 0 {
		return fmt.Errorf("invalid frame data: empty buffer")
	}
	if f.Width < minFrameWidth || f.Width > maxFrameWidth ||
		f.Height < minFrameHeight || f.Height > maxFrameHeight {
		return fmt.Errorf("invalid frame dimensions: %dx%d", f.Width, f.Height)
	}
	if f.Format == "" {
		return fmt.Errorf("invalid frame data: empty format")
	}
	expected := frame.CalculateSize(f.Width, f.Height, f.Format)
	if expected > 0 && float64(len(f.Data)) < float64(expected)*0.8 {
		return fmt.Errorf("invalid frame data: buffer too small for %dx%d %s", f.Width, f.Height, f.Format)
	}
	return nil
}

func (p *Processor) updateStats(processingMs int64, detections int) {
	p.totalFrames.Add(1)
	p.totalDetections.Add(int64(detections))
	p.totalProcessingMs.Add(processingMs)
}

// TotalFramesProcessed returns the running count of ProcessFrame calls.
func (p *Processor) TotalFramesProcessed() int64 { return p.totalFrames.Load() }

// TotalDetections returns the running count of detections across all frames.
func (p *Processor) TotalDetections() int64 { return p.totalDetections.Load() }

// AverageProcessingTime returns the mean ProcessFrame latency in
// milliseconds, or zero before any frame has been processed.
func (p *Processor) AverageProcessingTime() float64 {
	frames := p.totalFrames.Load()
	if frames == 0 {
		return 0
	}
	return float64(p.totalProcessingMs.Load()) / float64(frames)
}
