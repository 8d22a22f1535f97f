package frame

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// Generator produces synthetic frames for the test-pattern backend. Every
// pattern except Noise (random bytes) and TimeCode (wall-clock driven) is
// deterministic. It owns no external resources and requires no decode
// library.
type Generator struct {
	width, height int
	counter       atomic.Int64
	startTime     time.Time
}

// NewGenerator constructs a Generator for the given frame size.
func NewGenerator(width, height int) *Generator {
	return &Generator{width: width, height: height, startTime: time.Now()}
}

// SetSize changes the dimensions used by subsequent frames.
func (g *Generator) SetSize(width, height int) {
	g.width, g.height = width, height
}

// ColorBars renders the classic eight-bar color test card.
func (g *Generator) ColorBars() Frame {
	f := New(g.width, g.height, string(FormatBGR))
	barWidth := max(1, g.width/8)
	colors := [8][3]byte{
		{255, 255, 255}, // white
		{0, 255, 255},   // yellow
		{255, 255, 0},   // cyan
		{0, 255, 0},     // green
		{255, 0, 255},   // magenta
		{0, 0, 255},     // red
		{255, 0, 0},     // blue
		{0, 0, 0},       // black
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			bar := x / barWidth
			if bar >= 8 {
				bar = 7
			}
			idx := (y*g.width + x) * 3
			f.Data[idx] = colors[bar][0]
			f.Data[idx+1] = colors[bar][1]
			f.Data[idx+2] = colors[bar][2]
		}
	}
	return f
}

// Checkerboard renders alternating 32px black/white squares.
func (g *Generator) Checkerboard() Frame {
	f := New(g.width, g.height, string(FormatBGR))
	const square = 32
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			white := ((x/square)+(y/square))%2 == 0
			var c byte
			if white {
				c = 255
			}
			idx := (y*g.width + x) * 3
			f.Data[idx] = c
			f.Data[idx+1] = c
			f.Data[idx+2] = c
		}
	}
	return f
}

// MovingBox renders a green square that advances diagonally each call.
func (g *Generator) MovingBox() Frame {
	f := New(g.width, g.height, string(FormatBGR))
	FillColor(&f, 50, 50, 50)

	counter := int(g.counter.Load())
	const boxSize = 60
	x := (counter * 3) % max(1, g.width-boxSize)
	y := (counter * 2) % max(1, g.height-boxSize)

	for dy := 0; dy < boxSize; dy++ {
		for dx := 0; dx < boxSize; dx++ {
			px, py := x+dx, y+dy
			if px < g.width && py < g.height {
				idx := (py*g.width + px) * 3
				f.Data[idx] = 0
				f.Data[idx+1] = 255
				f.Data[idx+2] = 0
			}
		}
	}
	g.counter.Add(1)
	return f
}

// Noise renders uniform random bytes across the whole buffer.
func (g *Generator) Noise() Frame {
	f := New(g.width, g.height, string(FormatBGR))
	for i := range f.Data {
		f.Data[i] = byte(rand.Intn(256))
	}
	return f
}

// TimeCode renders a dark-blue frame with a brightness-modulated patch
// standing in for an on-screen timecode overlay.
func (g *Generator) TimeCode() Frame {
	f := New(g.width, g.height, string(FormatBGR))
	FillColor(&f, 0, 0, 100)

	elapsed := time.Since(g.startTime)
	intensity := byte((int(elapsed.Seconds()) % 10) * 25)
	_ = fmt.Sprintf("frame %d time %ds", g.counter.Load(), int(elapsed.Seconds()))

	maxX := 200
	if maxX > g.width {
		maxX = g.width
	}
	for y := 20; y < 60 && y < g.height; y++ {
		for x := 20; x < maxX; x++ {
			idx := (y*g.width + x) * 3
			if idx+2 >= len(f.Data) {
				continue
			}
			f.Data[idx] = intensity
			f.Data[idx+1] = 255
			f.Data[idx+2] = intensity
		}
	}
	g.counter.Add(1)
	return f
}

// Pattern enumerates the five rotating patterns.
type Pattern int

const (
	PatternColorBars Pattern = iota
	PatternCheckerboard
	PatternMovingBox
	PatternNoise
	PatternTimeCode
	patternCount
)

// Generate dispatches to the pattern-specific generator.
func (g *Generator) Generate(p Pattern) Frame {
	switch p % patternCount {
	case PatternColorBars:
		return g.ColorBars()
	case PatternCheckerboard:
		return g.Checkerboard()
	case PatternMovingBox:
		return g.MovingBox()
	case PatternNoise:
		return g.Noise()
	case PatternTimeCode:
		return g.TimeCode()
	default:
		return g.ColorBars()
	}
}
