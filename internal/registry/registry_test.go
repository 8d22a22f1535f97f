package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/khaledhikmat/visiongrid/internal/capture"
)

func testConfig() capture.Config {
	cfg := capture.DefaultConfig()
	cfg.ReconnectDelayMs = 1
	return cfg
}

func TestStartStreamRejectsEmptyCameraID(t *testing.T) {
	r := New(5, testConfig())
	_, err := r.StartStream(context.Background(), "", "test://pattern", nil)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestStartStreamRejectsInvalidURL(t *testing.T) {
	r := New(5, testConfig())
	_, err := r.StartStream(context.Background(), "cam1", "not-a-url", nil)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestStartStreamGeneratesPrefixedStreamID(t *testing.T) {
	r := New(5, testConfig())
	state, err := r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.StopStream(context.Background(), "cam1")

	id := GenerateStreamID(state.CameraID)
	if !strings.HasPrefix(id, "cam1_") {
		t.Fatalf("expected stream id to be prefixed with camera id, got %q", id)
	}
}

func TestStartStreamRejectsDuplicate(t *testing.T) {
	r := New(5, testConfig())
	_, err := r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.StopStream(context.Background(), "cam1")

	_, err = r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if _, ok := err.(*AdmissionError); !ok {
		t.Fatalf("expected AdmissionError for duplicate stream, got %v", err)
	}
}

func TestStartStreamRejectsOverCapacity(t *testing.T) {
	r := New(1, testConfig())
	_, err := r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.StopStream(context.Background(), "cam1")

	_, err = r.StartStream(context.Background(), "cam2", "test://pattern", nil)
	if _, ok := err.(*AdmissionError); !ok {
		t.Fatalf("expected AdmissionError at capacity, got %v", err)
	}
}

func TestStopStreamThenStatusReportsStopped(t *testing.T) {
	r := New(5, testConfig())
	_, err := r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.StopStream(context.Background(), "cam1"); err != nil {
		t.Fatalf("unexpected error stopping: %v", err)
	}

	snap, err := r.GetStreamStatus("cam1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Status != StatusStopped {
		t.Fatalf("expected status stopped, got %q", snap.Status)
	}
}

func TestStopStreamUnknownCameraIsAdmissionError(t *testing.T) {
	r := New(5, testConfig())
	err := r.StopStream(context.Background(), "nonexistent")
	if _, ok := err.(*AdmissionError); !ok {
		t.Fatalf("expected AdmissionError, got %v", err)
	}
}

func TestStartStopStartRoundTrip(t *testing.T) {
	r := New(5, testConfig())

	_, err := r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.StopStream(context.Background(), "cam1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error restarting same camera id: %v", err)
	}
	defer r.StopStream(context.Background(), "cam1")
}

func TestGetStreamStatusRejectsEmptyID(t *testing.T) {
	r := New(5, testConfig())
	_, err := r.GetStreamStatus("")
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetHealthReflectsActiveStreams(t *testing.T) {
	r := New(5, testConfig())
	health := r.GetHealth("1.0.0")
	if health.ActiveStreams != 0 {
		t.Fatalf("expected 0 active streams, got %d", health.ActiveStreams)
	}
	if health.Status != HealthHealthy {
		t.Fatalf("expected healthy status, got %q", health.Status)
	}

	_, err := r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.StopStream(context.Background(), "cam1")

	health = r.GetHealth("1.0.0")
	if health.ActiveStreams != 1 {
		t.Fatalf("expected 1 active stream, got %d", health.ActiveStreams)
	}
}

func TestShutdownStopsAllStreams(t *testing.T) {
	r := New(5, testConfig())
	_, err := r.StartStream(context.Background(), "cam1", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = r.StartStream(context.Background(), "cam2", "test://pattern", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Shutdown(context.Background())

	if r.ActiveStreamsCount() != 0 {
		t.Fatalf("expected 0 active streams after shutdown, got %d", r.ActiveStreamsCount())
	}
}
