package capture

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/khaledhikmat/visiongrid/internal/frame"
)

// fakeBackend is a same-package test double, injected via
// newEngineWithBackend so the reconnect-exhaustion boundary can be driven
// deterministically without a real decoder or device.
type fakeBackend struct {
	openFails  atomic.Bool
	openCalls  atomic.Int32
	readFails  atomic.Bool
	closeCalls atomic.Int32
	gen        *frame.Generator
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{gen: frame.NewGenerator(64, 48)}
}

func (b *fakeBackend) open(url string, cfg Config) error {
	b.openCalls.Add(1)
	if b.openFails.Load() {
		return errors.New("fake backend refuses to open")
	}
	return nil
}

func (b *fakeBackend) read() (frame.Frame, error) {
	if b.readFails.Load() {
		return frame.Frame{}, errors.New("fake backend read failure")
	}
	return b.gen.Generate(frame.PatternColorBars), nil
}

func (b *fakeBackend) close() error {
	b.closeCalls.Add(1)
	return nil
}

func fastReconnectConfig() Config {
	cfg := DefaultConfig()
	cfg.ReconnectDelayMs = 1
	cfg.MaxReconnectAttempts = 2
	return cfg
}

func TestEngineInitializeRejectsInvalidConfig(t *testing.T) {
	e := newEngineWithBackend("test://pattern", newFakeBackend())
	cfg := DefaultConfig()
	cfg.Width = 0

	if err := e.Initialize(cfg); err == nil {
		t.Fatal("expected error for invalid config")
	}
	if e.State() != StateError {
		t.Fatalf("expected StateError, got %v", e.State())
	}
}

func TestEngineInitializeSuccess(t *testing.T) {
	e := newEngineWithBackend("test://pattern", newFakeBackend())
	if err := e.Initialize(fastReconnectConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State() != StateReady {
		t.Fatalf("expected StateReady, got %v", e.State())
	}
}

func TestEngineDoubleInitializeFails(t *testing.T) {
	e := newEngineWithBackend("test://pattern", newFakeBackend())
	if err := e.Initialize(fastReconnectConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Initialize(fastReconnectConfig()); err == nil {
		t.Fatal("expected error on second Initialize")
	}
}

func TestEngineStartStopStartCapture(t *testing.T) {
	e := newEngineWithBackend("test://pattern", newFakeBackend())
	if err := e.Initialize(fastReconnectConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if err := e.StartCapture(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.IsCapturing() {
		t.Fatal("expected engine to be capturing")
	}

	if err := e.StopCapture(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.IsCapturing() {
		t.Fatal("expected engine to have stopped capturing")
	}

	// Double stop is a no-op success.
	if err := e.StopCapture(ctx); err != nil {
		t.Fatalf("unexpected error on second stop: %v", err)
	}

	if err := e.StartCapture(ctx); err != nil {
		t.Fatalf("unexpected error restarting capture: %v", err)
	}
	if err := e.StopCapture(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEngineStartCaptureBeforeReadyFails(t *testing.T) {
	e := newEngineWithBackend("test://pattern", newFakeBackend())
	if err := e.StartCapture(context.Background()); err == nil {
		t.Fatal("expected error starting capture before initialize")
	}
}

func TestEngineSelfStopRejected(t *testing.T) {
	e := newEngineWithBackend("test://pattern", newFakeBackend())
	if err := e.Initialize(fastReconnectConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	selfStopErr := make(chan error, 1)
	e.SetFrameCallback(func(ctx context.Context, f frame.Frame) {
		select {
		case selfStopErr <- e.StopCapture(ctx):
		default:
		}
	})

	if err := e.StartCapture(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer e.StopCapture(context.Background())

	select {
	case err := <-selfStopErr:
		if err == nil {
			t.Fatal("expected self-stop to be rejected")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame callback")
	}
}

func TestEngineReconnectExhaustionReachesError(t *testing.T) {
	b := newFakeBackend()
	e := newEngineWithBackend("test://pattern", b)

	cfg := fastReconnectConfig()
	if err := e.Initialize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.readFails.Store(true)
	b.openFails.Store(true)

	if err := e.StartCapture(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.State() == StateError {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if e.State() != StateError {
		t.Fatalf("expected StateError after reconnect exhaustion, got %v", e.State())
	}
	if e.LastError() == "" {
		t.Fatal("expected LastError to be set")
	}
}
