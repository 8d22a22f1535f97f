package frameproc

import (
	"testing"

	"github.com/khaledhikmat/visiongrid/internal/frame"
)

func TestMotionDetectorFirstCallNeverReports(t *testing.T) {
	d := NewMotionDetector()
	if err := d.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Cleanup()

	f := frame.CreateTestFrame(64, 48, "bgr")
	if dets := d.Detect(f); dets != nil {
		t.Fatalf("expected no detections on first frame, got %d", len(dets))
	}
}

func TestMotionDetectorReportsOnSizeChange(t *testing.T) {
	d := NewMotionDetector()
	if err := d.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Cleanup()

	small := frame.CreateTestFrame(32, 32, "bgr")
	large := frame.CreateTestFrame(128, 128, "bgr")

	d.Detect(small)
	dets := d.Detect(large)

	if len(dets) != 1 {
		t.Fatalf("expected exactly one detection on buffer size change, got %d", len(dets))
	}
	if dets[0].Type != "motion" {
		t.Fatalf("expected detection type motion, got %q", dets[0].Type)
	}
}

func TestMotionDetectorUninitializedReportsNothing(t *testing.T) {
	d := NewMotionDetector()
	f := frame.CreateTestFrame(64, 48, "bgr")
	if dets := d.Detect(f); dets != nil {
		t.Fatalf("expected nil detections before Initialize, got %d", len(dets))
	}
}

func TestMotionDetectorCleanupResetsState(t *testing.T) {
	d := NewMotionDetector()
	if err := d.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := frame.CreateTestFrame(64, 48, "bgr")
	d.Detect(f)
	d.Cleanup()

	if dets := d.Detect(f); dets != nil {
		t.Fatalf("expected nil detections after Cleanup, got %d", len(dets))
	}
}
