package capture

import (
	"fmt"

	"github.com/khaledhikmat/visiongrid/internal/frame"
)

// backend is the narrow per-source-type capability the engine drives from
// its capture loop: open against a URL with a Config, read one frame, and
// release any held resources.
type backend interface {
	open(url string, cfg Config) error
	read() (frame.Frame, error)
	close() error
}

// newBackend constructs the backend implementation for t. TypeHTTPStream and
// TypeUnknown have no capture backend; the engine rejects them at
// Initialize time.
func newBackend(t Type) (backend, error) {
	switch t {
	case TypeFileVideo:
		return &gocvBackend{kind: gocvKindFile}, nil
	case TypeWebcam:
		return &gocvBackend{kind: gocvKindWebcam}, nil
	case TypeRTSPStream:
		return &gocvBackend{kind: gocvKindRTSP}, nil
	case TypeTestPattern:
		return &testPatternBackend{}, nil
	default:
		return nil, fmt.Errorf("unsupported camera type: %s", t)
	}
}

// testPatternBackend requires no external library. It rotates among five
// patterns, advancing to the next one every 5*fps captured frames. Test
// frames are always considered valid regardless of content.
type testPatternBackend struct {
	gen     *frame.Generator
	fps     int
	frames  int64
	pattern frame.Pattern
}

func (b *testPatternBackend) open(url string, cfg Config) error {
	b.gen = frame.NewGenerator(cfg.Width, cfg.Height)
	b.fps = cfg.FPS
	return nil
}

func (b *testPatternBackend) read() (frame.Frame, error) {
	f := b.gen.Generate(b.pattern)

	every := int64(max1(b.fps) * 5)
	b.frames++
	if b.frames%every == 0 {
		b.pattern = (b.pattern + 1) % 5
	}

	return f, nil
}

func (b *testPatternBackend) close() error { return nil }

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
