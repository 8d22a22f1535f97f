// Package registry implements the session registry: the concurrency-safe
// index from camera_id to live stream state that the RPC surface is built
// on top of. Grounded on vision_service.h/.cpp's StreamState and
// active_streams_ map.
package registry

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/khaledhikmat/visiongrid/internal/capture"
	"github.com/khaledhikmat/visiongrid/internal/frameproc"
)

// Status strings mirror VisionServiceConstants' STATUS_* values exactly;
// they cross the RPC boundary as plain strings.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusStarting = "starting"
	StatusActive   = "active"
	StatusStopping = "stopping"
	StatusStopped  = "stopped"
)

// Health strings mirror HEALTH_*.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// StreamState is a single session's record: the capture engine and frame
// processor it owns, plus the counters the status RPC reports. The
// registry exclusively owns it; the capture worker holds only a
// non-owning reference via the frame callback closure.
type StreamState struct {
	CameraID     string
	CameraURL    string
	SessionToken string
	StartTime    time.Time

	Engine    *capture.Engine
	Processor *frameproc.Processor

	FramesProcessed atomic.Int64
	DetectionsCount atomic.Int64

	status atomic.Value // string

	// statsStopCh is closed by StopStream to tell the session's periodic
	// stats reporter goroutine to exit.
	statsStopCh chan struct{}
}

func newStreamState(cameraID, cameraURL string) *StreamState {
	s := &StreamState{
		CameraID:     cameraID,
		CameraURL:    cameraURL,
		SessionToken: uuid.NewString(),
		StartTime:    time.Now(),
		statsStopCh:  make(chan struct{}),
	}
	s.status.Store(StatusStarting)
	return s
}

// Status returns the stream's current lifecycle status string.
func (s *StreamState) Status() string { return s.status.Load().(string) }

func (s *StreamState) setStatus(v string) { s.status.Store(v) }

// StatusSnapshot is a point-in-time read of a stream's status, returned by
// GetStreamStatus.
type StatusSnapshot struct {
	CameraID           string
	Status             string
	Message            string
	FramesProcessed    int64
	DetectionsCount    int64
	FPSActual          float64
	UptimeSeconds      float64
	LastFrameTimestamp int64
}

// HealthSnapshot is a point-in-time read of service health, returned by
// GetHealth.
type HealthSnapshot struct {
	Status        string
	Message       string
	ActiveStreams int
	UptimeSeconds float64
	Version       string
}

// ValidationError marks a request-level problem (empty id, malformed URL):
// the RPC layer maps it to an invalid-argument error and never mutates
// state for it.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

// AdmissionError marks a soft failure reported in-body as status=error:
// duplicate session, capacity exceeded, backend initialization failure.
type AdmissionError struct{ msg string }

func (e *AdmissionError) Error() string { return e.msg }
