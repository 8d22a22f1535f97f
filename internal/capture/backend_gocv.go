package capture

import (
	"fmt"
	"log/slog"

	"github.com/khaledhikmat/visiongrid/internal/frame"
	"github.com/khaledhikmat/visiongrid/internal/lgr"
	"gocv.io/x/gocv"
)

// gocvKind selects how a gocvBackend interprets its URL when opening the
// underlying gocv.VideoCapture.
type gocvKind int

const (
	gocvKindFile gocvKind = iota
	gocvKindWebcam
	gocvKindRTSP
)

// gocvBackend wraps gocv.VideoCapture for file, webcam and RTSP sources.
// Grounded on khaledhikmat-vs-go/pipeline/framer.go's rtspFramer/randomFramer
// and CameraManager::InitializeFileCapture/InitializeWebcamCapture/
// InitializeRtspCapture.
//
// If the native OpenCV library can't actually decode the source - camera
// unplugged, codec missing, RTSP host unreachable - Open still succeeds and
// the backend degrades to emitting synthetic frames, matching the original's
// "initialization may succeed trivially" fallback note.
type gocvBackend struct {
	kind     gocvKind
	vc       *gocv.VideoCapture
	mat      gocv.Mat
	degraded bool
	gen      *frame.Generator
	cfg      Config
}

func (b *gocvBackend) open(url string, cfg Config) error {
	b.cfg = cfg
	b.gen = frame.NewGenerator(cfg.Width, cfg.Height)

	var vc *gocv.VideoCapture
	var err error

	switch b.kind {
	case gocvKindWebcam:
		if idx, ok := WebcamDeviceIndex(url); ok {
			vc, err = gocv.OpenVideoCapture(idx)
		} else {
			vc, err = gocv.OpenVideoCapture(url)
		}
	default:
		vc, err = gocv.OpenVideoCapture(url)
	}

	if err != nil || vc == nil {
		lgr.Logger.Warn("capture device unavailable, falling back to synthetic frames",
			slog.String("url", url), slog.Any("error", err))
		b.degraded = true
		return nil
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	vc.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))

	b.vc = vc
	b.mat = gocv.NewMat()
	return nil
}

func (b *gocvBackend) read() (frame.Frame, error) {
	if b.degraded || b.vc == nil {
		return b.gen.Generate(frame.PatternColorBars), nil
	}

	if ok := b.vc.Read(&b.mat); !ok || b.mat.Empty() {
		return frame.Frame{}, fmt.Errorf("capture read failed or returned empty mat")
	}

	data := b.mat.ToBytes()
	buf := make([]byte, len(data))
	copy(buf, data)

	return frame.Frame{
		Data:   buf,
		Width:  b.mat.Cols(),
		Height: b.mat.Rows(),
		Format: b.cfg.Format,
	}, nil
}

func (b *gocvBackend) close() error {
	if !b.mat.Empty() || b.vc != nil {
		_ = b.mat.Close()
	}
	if b.vc != nil {
		return b.vc.Close()
	}
	return nil
}
