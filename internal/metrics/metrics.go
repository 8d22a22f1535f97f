// Package metrics implements the process-wide ServiceMetrics singleton:
// constructed at package load, atomic counters, snapshot reads, no teardown.
package metrics

import "sync/atomic"

// Bundle is the atomic counter set backing the singleton. Writes are
// lock-free; reads return a point-in-time snapshot.
type Bundle struct {
	streamsStarted      atomic.Int64
	framesProcessed     atomic.Int64
	detections          atomic.Int64
	totalProcessingTime atomic.Int64
	processingSamples   atomic.Int64
}

var instance = &Bundle{}

// Instance returns the process-wide metrics bundle. It is initialized at
// package load, matching the original's lazy-singleton intent closely
// enough that callers never need to know about construction order.
func Instance() *Bundle { return instance }

func (b *Bundle) IncrementStreamsStarted()  { b.streamsStarted.Add(1) }
func (b *Bundle) IncrementFramesProcessed() { b.framesProcessed.Add(1) }
func (b *Bundle) IncrementDetections()      { b.detections.Add(1) }

func (b *Bundle) RecordProcessingTime(ms int64) {
	b.totalProcessingTime.Add(ms)
	b.processingSamples.Add(1)
}

func (b *Bundle) StreamsStarted() int64  { return b.streamsStarted.Load() }
func (b *Bundle) FramesProcessed() int64 { return b.framesProcessed.Load() }
func (b *Bundle) Detections() int64      { return b.detections.Load() }

func (b *Bundle) AverageProcessingTime() float64 {
	samples := b.processingSamples.Load()
	if samples == 0 {
		return 0
	}
	return float64(b.totalProcessingTime.Load()) / float64(samples)
}
