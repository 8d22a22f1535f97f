// Package capture implements the per-session capture engine: URL
// classification, typed backend initialization, the bounded capture loop
// with framerate pacing and auto-reconnect, and state-machine discipline.
package capture

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Type is the tagged variant describing where a camera URL points.
type Type int

const (
	TypeUnknown Type = iota
	TypeFileVideo
	TypeWebcam
	TypeRTSPStream
	TypeHTTPStream
	TypeTestPattern
)

func (t Type) String() string {
	switch t {
	case TypeFileVideo:
		return "FILE_VIDEO"
	case TypeWebcam:
		return "WEBCAM"
	case TypeRTSPStream:
		return "RTSP_STREAM"
	case TypeHTTPStream:
		return "HTTP_STREAM"
	case TypeTestPattern:
		return "TEST_PATTERN"
	default:
		return "UNKNOWN"
	}
}

// State is the capture engine's lifecycle state, stored as an atomic enum so
// it can be read from the worker's hot path without locking.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateCapturing
	StateError
	StateDisconnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "INITIALIZING"
	case StateReady:
		return "READY"
	case StateCapturing:
		return "CAPTURING"
	case StateError:
		return "ERROR"
	case StateDisconnected:
		return "DISCONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	default:
		return "UNINITIALIZED"
	}
}

// Config is a session's capture configuration.
type Config struct {
	Width                int
	Height               int
	FPS                  int
	Format               string
	AutoReconnect        bool
	ReconnectDelayMs     int
	MaxReconnectAttempts int
	FrameBufferSize      int
}

// DefaultConfig mirrors CameraManagerConstants' defaults.
func DefaultConfig() Config {
	return Config{
		Width:                640,
		Height:               480,
		FPS:                  15,
		Format:               "bgr",
		AutoReconnect:        true,
		ReconnectDelayMs:     5000,
		MaxReconnectAttempts: 3,
		FrameBufferSize:      30,
	}
}

// Validate checks the invariants from spec §3: positive dimensions/fps, and
// a width*height product that does not overflow a signed 32-bit int.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.FPS <= 0 {
		return fmt.Errorf("invalid configuration parameters: width=%d height=%d fps=%d", c.Width, c.Height, c.FPS)
	}
	const maxInt32 = int64(1)<<31 - 1
	if int64(c.Width)*int64(c.Height) > maxInt32 {
		return fmt.Errorf("invalid configuration parameters: width*height overflows")
	}
	return nil
}

// Stats holds the monotonic counters and timestamps the spec requires.
// Counters are atomics so they can be read from any goroutine without a
// lock.
type Stats struct {
	FramesCaptured atomic.Int64
	FramesDropped  atomic.Int64
	BytesReceived  atomic.Int64
	ReconnectCount atomic.Int64
	startTime      atomic.Int64 // unix nanos
	lastFrameTime  atomic.Int64 // unix nanos
}

func newStats() *Stats {
	s := &Stats{}
	s.startTime.Store(time.Now().UnixNano())
	return s
}

// FPSActual is frames_captured / max(1, uptime_seconds).
func (s *Stats) FPSActual() float64 {
	uptime := s.UptimeSeconds()
	if uptime < 1 {
		uptime = 1
	}
	return float64(s.FramesCaptured.Load()) / uptime
}

// UptimeSeconds is now - start_time, in seconds.
func (s *Stats) UptimeSeconds() float64 {
	start := s.startTime.Load()
	if start == 0 {
		return 0
	}
	return time.Since(time.Unix(0, start)).Seconds()
}

func (s *Stats) recordFrame(n int) {
	s.FramesCaptured.Add(1)
	s.BytesReceived.Add(int64(n))
	s.lastFrameTime.Store(time.Now().UnixNano())
}
