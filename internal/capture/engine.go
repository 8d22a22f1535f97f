package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/khaledhikmat/visiongrid/internal/frame"
	"github.com/khaledhikmat/visiongrid/internal/lgr"
	"github.com/khaledhikmat/visiongrid/internal/model"
)

// FrameCallback is invoked once per validated frame, on the capture
// goroutine. It must not block. The engine copies the callback under the
// callback lock and invokes the copy after releasing it.
type FrameCallback func(ctx context.Context, f frame.Frame)

// loopMarkerKey tags the context handed to the capture goroutine so
// StopCapture can detect and reject a self-stop, mirroring the original's
// thread-identity check without relying on goroutine IDs.
type loopMarkerKey struct{}

// Engine is the per-session capture worker: it classifies a URL, opens the
// matching backend, and runs the capture loop described in
// CameraManager::CaptureLoop, including bounded auto-reconnect.
type Engine struct {
	url     string
	camType Type

	cfgMu           sync.Mutex
	cfg             Config
	backend         backend
	overrideBackend backend

	state     atomic.Int32
	lastError atomic.Value // string

	cbMu     sync.Mutex
	callback FrameCallback

	shouldStop        atomic.Bool
	capturing         atomic.Bool
	reconnectAttempts atomic.Int64

	stats *Stats

	cancel context.CancelFunc
	doneCh chan struct{}
}

// New constructs an Engine for url, classifying its CameraType immediately.
func New(url string) *Engine {
	e := &Engine{url: url, camType: ClassifyURL(url), stats: newStats()}
	e.state.Store(int32(StateUninitialized))
	e.lastError.Store("")
	return e
}

// newEngineWithBackend bypasses camera-type classification so tests can
// drive a fake backend (including one that always fails to open, to
// exercise the reconnect-exhaustion boundary).
func newEngineWithBackend(url string, b backend) *Engine {
	e := New(url)
	e.overrideBackend = b
	return e
}

func (e *Engine) CameraURL() string { return e.url }
func (e *Engine) CameraType() Type  { return e.camType }
func (e *Engine) State() State      { return State(e.state.Load()) }
func (e *Engine) IsCapturing() bool { return e.capturing.Load() }

func (e *Engine) IsConnected() bool {
	s := e.State()
	return s == StateReady || s == StateCapturing
}

func (e *Engine) LastError() string { return e.lastError.Load().(string) }
func (e *Engine) Stats() *Stats     { return e.stats }

func (e *Engine) Config() Config {
	e.cfgMu.Lock()
	defer e.cfgMu.Unlock()
	return e.cfg
}

// Initialize validates cfg, opens the type-specific backend and transitions
// UNINITIALIZED -> INITIALIZING -> READY (or ERROR on an invalid config or
// a backend failure). Calling it on an engine that is not UNINITIALIZED
// returns an error and leaves the state unchanged.
func (e *Engine) Initialize(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		wrapped := model.GenError("capture.Engine", err, map[string]interface{}{"url": e.url}, "invalid camera configuration")
		e.setError(wrapped)
		e.setState(StateError)
		return wrapped
	}

	e.cfgMu.Lock()
	if e.State() != StateUninitialized {
		e.cfgMu.Unlock()
		err := model.GenError("capture.Engine", nil, map[string]interface{}{"url": e.url}, "already initialized")
		e.setError(err)
		return err
	}
	e.setState(StateInitializing)
	e.cfg = cfg
	e.cfgMu.Unlock()

	b := e.overrideBackend
	if b == nil {
		var err error
		b, err = newBackend(e.camType)
		if err != nil {
			e.setError(err)
			e.setState(StateError)
			return err
		}
	}

	if err := b.open(e.url, cfg); err != nil {
		e.setError(err)
		e.setState(StateError)
		return err
	}

	e.cfgMu.Lock()
	e.backend = b
	e.cfgMu.Unlock()

	e.stats = newStats()
	e.setState(StateReady)
	lgr.Logger.Info("capture engine initialized", slog.String("url", e.url), slog.String("type", e.camType.String()))
	return nil
}

// StartCapture launches the capture goroutine. Calling it while already
// capturing is a no-op that returns nil; calling it before Initialize
// succeeds returns an error.
func (e *Engine) StartCapture(ctx context.Context) error {
	e.cfgMu.Lock()
	if e.capturing.Load() {
		e.cfgMu.Unlock()
		return nil
	}
	if e.State() != StateReady {
		e.cfgMu.Unlock()
		err := fmt.Errorf("camera not ready for capture")
		e.setError(err)
		return err
	}
	e.shouldStop.Store(false)
	e.cfgMu.Unlock()

	loopCtx, cancel := context.WithCancel(context.WithValue(ctx, loopMarkerKey{}, true))
	e.cancel = cancel
	e.doneCh = make(chan struct{})
	e.capturing.Store(true)
	e.setState(StateCapturing)

	go e.captureLoop(loopCtx)
	lgr.Logger.Info("capture started", slog.String("url", e.url))
	return nil
}

// StopCapture signals the worker to stop and blocks until it exits. A
// capture goroutine that calls StopCapture on itself (e.g. from inside a
// frame callback) is rejected to avoid a self-join deadlock.
func (e *Engine) StopCapture(ctx context.Context) error {
	if v, _ := ctx.Value(loopMarkerKey{}).(bool); v {
		return fmt.Errorf("stop capture called from the capture goroutine itself")
	}

	if !e.capturing.Load() {
		return nil
	}

	e.shouldStop.Store(true)
	if e.cancel != nil {
		e.cancel()
	}
	if e.doneCh != nil {
		<-e.doneCh
	}

	if e.State() == StateCapturing {
		e.setState(StateReady)
	}
	lgr.Logger.Info("capture stopped", slog.String("url", e.url))
	return nil
}

// Cleanup stops any running capture, releases the backend and returns the
// engine to UNINITIALIZED.
func (e *Engine) Cleanup(ctx context.Context) {
	if err := e.StopCapture(ctx); err != nil {
		lgr.Logger.Warn("error stopping capture during cleanup", slog.Any("error", err))
	}

	e.cfgMu.Lock()
	if e.backend != nil {
		_ = e.backend.close()
		e.backend = nil
	}
	e.cfgMu.Unlock()

	e.cbMu.Lock()
	e.callback = nil
	e.cbMu.Unlock()

	e.setState(StateUninitialized)
}

// SetFrameCallback installs cb, replacing any previously registered one.
func (e *Engine) SetFrameCallback(cb FrameCallback) {
	e.cbMu.Lock()
	e.callback = cb
	e.cbMu.Unlock()
}

// ClearFrameCallback removes the registered callback, if any.
func (e *Engine) ClearFrameCallback() {
	e.cbMu.Lock()
	e.callback = nil
	e.cbMu.Unlock()
}

func (e *Engine) captureLoop(ctx context.Context) {
	defer close(e.doneCh)
	defer e.capturing.Store(false)

	lgr.Logger.Debug("capture loop started", slog.String("url", e.url))

	fps := e.Config().FPS
	if fps < 1 {
		fps = 1
	}
	interval := time.Second / time.Duration(fps)

	for !e.shouldStop.Load() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok := e.captureFrame(ctx); !ok {
			cfg := e.Config()
			if cfg.AutoReconnect && e.shouldAttemptReconnect() {
				e.attemptReconnect(ctx)
				if e.State() == StateError {
					return
				}
			} else {
				e.setError(fmt.Errorf("capture failed and reconnect disabled"))
				e.setState(StateError)
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}

	lgr.Logger.Debug("capture loop exited", slog.String("url", e.url))
}

// captureFrame reads one frame from the backend and, if it validates,
// records stats and dispatches to the callback. The bool return is whether
// the backend itself produced a frame at all - validation failures are
// not capture failures and never trigger reconnect (see design notes).
func (e *Engine) captureFrame(ctx context.Context) bool {
	e.cfgMu.Lock()
	b := e.backend
	e.cfgMu.Unlock()
	if b == nil {
		return false
	}

	f, err := b.read()
	if err != nil {
		lgr.Logger.Warn("capture frame failed", slog.String("url", e.url), slog.Any("error", err))
		return false
	}

	if !f.CaptureValid() {
		lgr.Logger.Warn("captured frame failed validation", slog.String("url", e.url))
		return true
	}

	e.stats.recordFrame(len(f.Data))
	e.dispatchFrame(ctx, f)
	return true
}

func (e *Engine) dispatchFrame(ctx context.Context, f frame.Frame) {
	e.cbMu.Lock()
	cb := e.callback
	e.cbMu.Unlock()

	if cb == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			lgr.Logger.Error("frame callback panicked", slog.String("url", e.url), slog.Any("panic", r))
		}
	}()
	cb(ctx, f)
}

func (e *Engine) shouldAttemptReconnect() bool {
	cfg := e.Config()
	return cfg.AutoReconnect && e.reconnectAttempts.Load() < int64(cfg.MaxReconnectAttempts)
}

// attemptReconnect rewrites the original's self-recursive reconnect as a
// bounded loop: check the cap, sleep, reinitialize, and either succeed,
// continue, or fail terminally.
func (e *Engine) attemptReconnect(ctx context.Context) {
	for {
		cfg := e.Config()
		if e.reconnectAttempts.Load() >= int64(cfg.MaxReconnectAttempts) {
			e.setError(model.GenError("capture.Engine", nil, map[string]interface{}{"url": e.url, "attempts": e.reconnectAttempts.Load()}, "maximum reconnect attempts exceeded"))
			e.setState(StateError)
			return
		}

		e.setState(StateReconnecting)
		e.reconnectAttempts.Add(1)
		e.stats.ReconnectCount.Add(1)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(cfg.ReconnectDelayMs) * time.Millisecond):
		}

		e.cfgMu.Lock()
		b := e.backend
		e.cfgMu.Unlock()

		if b != nil {
			if err := b.open(e.url, cfg); err == nil {
				e.setState(StateCapturing)
				e.reconnectAttempts.Store(0)
				lgr.Logger.Info("reconnect succeeded", slog.String("url", e.url))
				return
			}
		}

		lgr.Logger.Warn("reconnect attempt failed", slog.String("url", e.url), slog.Int64("attempt", e.reconnectAttempts.Load()))

		if !e.shouldAttemptReconnect() {
			e.setError(model.GenError("capture.Engine", nil, map[string]interface{}{"url": e.url, "attempts": e.reconnectAttempts.Load()}, "maximum reconnect attempts exceeded"))
			e.setState(StateError)
			return
		}
	}
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

func (e *Engine) setError(err error) {
	lgr.Logger.Error("capture engine error", slog.String("url", e.url), slog.Any("error", err))
	e.lastError.Store(err.Error())
}
