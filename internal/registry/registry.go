package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/khaledhikmat/visiongrid/internal/capture"
	"github.com/khaledhikmat/visiongrid/internal/frame"
	"github.com/khaledhikmat/visiongrid/internal/frameproc"
	"github.com/khaledhikmat/visiongrid/internal/lgr"
	"github.com/khaledhikmat/visiongrid/internal/metrics"
	"github.com/khaledhikmat/visiongrid/internal/model"
)

// statsReportInterval is how often an active session emits a SessionStats
// snapshot onto the registry's stats channel, mirroring the teacher's
// agent heartbeat cadence (AgentsManagerPeriodicTimeout).
const statsReportInterval = 30 * time.Second

// Registry is the process-wide map from camera_id to StreamState, guarded
// by a single mutex, mirroring VisionServiceImpl's active_streams_ plus
// streams_mutex_.
type Registry struct {
	mu            sync.Mutex
	streams       map[string]*StreamState
	maxConcurrent int
	defaultCfg    capture.Config
	startTime     time.Time

	totalStreamsStarted atomic.Int64

	// statsCh is fed periodically by each active session and drained by
	// statsSink, mirroring the teacher's statsStream chan interface{}
	// pattern (pipeline/streamers.go, mode/manager.go's procStats).
	statsCh chan model.SessionStats
}

// New constructs a Registry admitting at most maxConcurrent simultaneous
// streams, initializing new capture engines with defaultCfg.
func New(maxConcurrent int, defaultCfg capture.Config) *Registry {
	r := &Registry{
		streams:       make(map[string]*StreamState),
		maxConcurrent: maxConcurrent,
		defaultCfg:    defaultCfg,
		startTime:     time.Now(),
		statsCh:       make(chan model.SessionStats, 32),
	}
	go r.statsSink()
	return r
}

// statsSink drains statsCh for the registry's lifetime, logging each
// snapshot. It is the background stats sink the teacher's procStats /
// procStreamerStats play the same role for.
func (r *Registry) statsSink() {
	for s := range r.statsCh {
		lgr.Logger.Info("session stats",
			slog.String("camera_id", s.CameraID),
			slog.Int64("frames", s.Frames),
			slog.Int64("detections", s.Detections),
			slog.Int64("uptime_seconds", s.Uptime),
			slog.Float64("fps", s.FPS),
			slog.Int64("timestamp", s.Timestamp),
		)
	}
}

// reportStats periodically emits a SessionStats snapshot for state onto
// statsCh until either the session stops (statsStopCh closes) or ctx is
// cancelled.
func (r *Registry) reportStats(ctx context.Context, state *StreamState) {
	ticker := time.NewTicker(statsReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-state.statsStopCh:
			return
		case <-ticker.C:
			uptime := time.Since(state.StartTime).Seconds()
			stats := model.SessionStats{
				CameraID:   state.CameraID,
				Frames:     state.FramesProcessed.Load(),
				Detections: state.DetectionsCount.Load(),
				Uptime:     int64(uptime),
				Timestamp:  time.Now().Unix(),
			}
			if uptime > 0 {
				stats.FPS = float64(stats.Frames) / uptime
			}
			select {
			case r.statsCh <- stats:
			case <-ctx.Done():
				return
			case <-state.statsStopCh:
				return
			}
		}
	}
}

// StartStream admits a new session. Empty id/url or an unclassifiable URL
// return *ValidationError; duplicate camera_id, capacity exceeded, or
// backend initialization failure return *AdmissionError. The RPC layer
// maps *ValidationError to an invalid-argument error and reports
// *AdmissionError in-body as status=error.
func (r *Registry) StartStream(ctx context.Context, cameraID, cameraURL string, cfg *capture.Config) (*StreamState, error) {
	if cameraID == "" {
		return nil, &ValidationError{"camera_id cannot be empty"}
	}
	if cameraURL == "" {
		return nil, &ValidationError{"camera_url cannot be empty"}
	}
	if !capture.IsValidURL(cameraURL) {
		return nil, &ValidationError{"invalid camera URL format"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.streams[cameraID]; exists {
		lgr.Logger.Error("stream already exists", slog.String("camera_id", cameraID))
		return nil, &AdmissionError{fmt.Sprintf("stream already active for camera %s", cameraID)}
	}

	if len(r.streams) >= r.maxConcurrent {
		lgr.Logger.Error("maximum concurrent streams reached")
		return nil, &AdmissionError{"maximum number of concurrent streams reached"}
	}

	effectiveCfg := r.defaultCfg
	if cfg != nil {
		effectiveCfg = *cfg
	}

	state := newStreamState(cameraID, cameraURL)
	state.Engine = capture.New(cameraURL)
	state.Processor = frameproc.NewProcessor()

	if err := state.Engine.Initialize(effectiveCfg); err != nil {
		lgr.Logger.Error("failed to initialize camera", slog.String("camera_id", cameraID), slog.Any("error", err))
		return nil, &AdmissionError{fmt.Sprintf("failed to initialize camera for %s", cameraID)}
	}

	state.Engine.SetFrameCallback(func(_ context.Context, f frame.Frame) {
		result := state.Processor.ProcessFrame(f)
		state.FramesProcessed.Add(1)
		if result.Success {
			state.DetectionsCount.Add(int64(len(result.Detections)))
			metrics.Instance().IncrementFramesProcessed()
			for i := 0; i < len(result.Detections); i++ {
				metrics.Instance().IncrementDetections()
			}
			metrics.Instance().RecordProcessingTime(result.ProcessingTimeMs)
		}
	})

	if err := state.Engine.StartCapture(ctx); err != nil {
		lgr.Logger.Error("failed to start capture", slog.String("camera_id", cameraID), slog.Any("error", err))
		return nil, &AdmissionError{fmt.Sprintf("failed to start capture for %s", cameraID)}
	}

	state.setStatus(StatusActive)
	r.streams[cameraID] = state
	r.totalStreamsStarted.Add(1)
	metrics.Instance().IncrementStreamsStarted()
	// StartStream's ctx is the RPC's request context, gone as soon as this
	// call returns; the reporter's lifetime is instead bound to the
	// session itself via statsStopCh.
	go r.reportStats(context.Background(), state)

	lgr.Logger.Info("stream started",
		slog.String("camera_id", cameraID),
		slog.String("camera_url", cameraURL),
		slog.String("session_token", state.SessionToken),
	)
	return state, nil
}

// StopStream tears down a session. An empty id returns *ValidationError; a
// missing camera_id returns *AdmissionError.
func (r *Registry) StopStream(ctx context.Context, cameraID string) error {
	if cameraID == "" {
		return &ValidationError{"camera_id cannot be empty"}
	}

	r.mu.Lock()
	state, ok := r.streams[cameraID]
	if !ok {
		r.mu.Unlock()
		return &AdmissionError{fmt.Sprintf("no active stream found for camera %s", cameraID)}
	}
	delete(r.streams, cameraID)
	r.mu.Unlock()

	state.setStatus(StatusStopping)
	close(state.statsStopCh)

	uptime := time.Since(state.StartTime).Seconds()
	stats := model.SessionStats{
		CameraID:   cameraID,
		Frames:     state.FramesProcessed.Load(),
		Detections: state.DetectionsCount.Load(),
		Uptime:     int64(uptime),
		Timestamp:  time.Now().Unix(),
	}
	if uptime > 0 {
		stats.FPS = float64(stats.Frames) / uptime
	}
	r.statsCh <- stats

	state.Engine.Cleanup(ctx)
	state.setStatus(StatusStopped)

	lgr.Logger.Info("stream stopped",
		slog.String("camera_id", cameraID),
		slog.String("session_token", state.SessionToken),
		slog.Int64("frames_processed", stats.Frames),
		slog.Int64("detections", stats.Detections),
		slog.Float64("fps_actual", stats.FPS),
		slog.Int64("uptime_seconds", stats.Uptime),
	)
	return nil
}

// GetStreamStatus returns a snapshot for cameraID, or a StatusStopped
// snapshot if no such stream is active. An empty id returns
// *ValidationError.
func (r *Registry) GetStreamStatus(cameraID string) (*StatusSnapshot, error) {
	if cameraID == "" {
		return nil, &ValidationError{"camera_id cannot be empty"}
	}

	r.mu.Lock()
	state, ok := r.streams[cameraID]
	r.mu.Unlock()

	if !ok {
		return &StatusSnapshot{
			CameraID: cameraID,
			Status:   StatusStopped,
			Message:  "no active stream",
		}, nil
	}

	uptime := time.Since(state.StartTime).Seconds()
	fps := 0.0
	if uptime > 0 {
		fps = float64(state.FramesProcessed.Load()) / uptime
	}

	return &StatusSnapshot{
		CameraID:           cameraID,
		Status:             state.Status(),
		Message:            "stream active",
		FramesProcessed:    state.FramesProcessed.Load(),
		DetectionsCount:    state.DetectionsCount.Load(),
		FPSActual:          fps,
		UptimeSeconds:      uptime,
		LastFrameTimestamp: time.Now().Unix(),
	}, nil
}

// GetHealth reports overall service health: degraded when any stream is in
// an error state, or when the registry is near capacity.
func (r *Registry) GetHealth(version string) *HealthSnapshot {
	r.mu.Lock()
	count := len(r.streams)
	degraded := false
	for _, s := range r.streams {
		if s.Status() == StatusError {
			degraded = true
			break
		}
	}
	r.mu.Unlock()

	status := HealthHealthy
	message := "service is healthy"
	if degraded {
		status = HealthDegraded
		message = "one or more streams in error state"
	}
	if r.maxConcurrent > 0 && float64(count) >= float64(r.maxConcurrent)*0.9 {
		status = HealthDegraded
		message = "approaching maximum concurrent streams"
	}

	return &HealthSnapshot{
		Status:        status,
		Message:       message,
		ActiveStreams: count,
		UptimeSeconds: time.Since(r.startTime).Seconds(),
		Version:       version,
	}
}

// GenerateStreamID derives a unique stream id from a camera_id and the
// current time, matching VisionServiceImpl::GenerateStreamId.
func GenerateStreamID(cameraID string) string {
	return fmt.Sprintf("%s_%d", cameraID, time.Now().UnixMilli())
}

// ActiveStreamsCount returns the current number of admitted sessions.
func (r *Registry) ActiveStreamsCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.streams)
}

// StreamForFrames returns the StreamState for cameraID if it is active,
// used by ProcessFrames to route inbound frame requests through the
// session's own processor.
func (r *Registry) StreamForFrames(cameraID string) (*StreamState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.streams[cameraID]
	return s, ok
}

// Shutdown stops every active session. Errors are logged and swallowed,
// matching the propagation policy for server teardown.
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.Lock()
	ids := make([]string, 0, len(r.streams))
	for id := range r.streams {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		if err := r.StopStream(ctx, id); err != nil {
			lgr.Logger.Warn("error stopping stream during shutdown", slog.String("camera_id", id), slog.Any("error", err))
		}
	}

	close(r.statsCh)
}
