// Package token tracks the on-screen pointer that aims pushes: either the
// mouse cursor or a coloured token followed through camera frames.
package token

import (
	"fmt"
	"image"

	"github.com/Faultbox/bouncebox/internal/tracker"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// Pointer reports the aim position in window pixels.
type Pointer interface {
	// Update advances to the latest input.
	Update() error
	// Position returns the last known aim position.
	Position() math.Vec2
	// Resize sets the window size positions are reported in.
	Resize(width, height int)
	// Calibrating reports whether the pointer needs calibration samples before use.
	Calibrating() bool
	// CalibrationTarget returns where the next calibration sample is taken, in window pixels.
	CalibrationTarget() (math.Vec2, bool)
	// Sample takes a calibration sample.
	Sample()
	// Recalibrate discards calibration.
	Recalibrate()
}

// Mouse is a pointer driven by the cursor. It never needs calibration.
type Mouse struct {
	pos math.Vec2
}

// NewMouse creates a cursor pointer.
func NewMouse() *Mouse {
	return &Mouse{}
}

// Move records the cursor position.
func (m *Mouse) Move(x, y float32) {
	m.pos = math.Vec2{X: x, Y: y}
}

func (m *Mouse) Update() error { return nil }

// Position returns the last cursor position.
func (m *Mouse) Position() math.Vec2 { return m.pos }

// Resize does nothing; cursor positions are already in window pixels.
func (m *Mouse) Resize(width, height int) {}

func (m *Mouse) Calibrating() bool { return false }

func (m *Mouse) CalibrationTarget() (math.Vec2, bool) { return math.Vec2{}, false }

func (m *Mouse) Sample() {}

func (m *Mouse) Recalibrate() {}

// Frames yields camera frames of a fixed size.
type Frames interface {
	Next() (image.Image, error)
	Size() (width, height int)
}

// Tracked is a pointer that follows a coloured token through camera frames.
// Frame coordinates are scaled to the window.
type Tracked struct {
	tracker *tracker.Tracker
	frames  Frames
	frame   image.Image
	mask    image.Image
	pos     math.Vec2
	found   bool
	scale   math.Vec2
}

// NewTracked creates a token pointer. It starts calibrating.
func NewTracked(t *tracker.Tracker, frames Frames, width, height int) *Tracked {
	p := &Tracked{tracker: t, frames: frames}
	p.Resize(width, height)
	return p
}

// Resize sets the window size.
func (p *Tracked) Resize(width, height int) {
	fw, fh := p.frames.Size()
	p.scale = math.Vec2{
		X: float32(width) / float32(fw),
		Y: float32(height) / float32(fh),
	}
}

// Update reads the next frame and, once calibrated, locates the token in it.
// The position is kept when the token is not found.
func (p *Tracked) Update() error {
	frame, err := p.frames.Next()
	if err != nil {
		return fmt.Errorf("next frame: %w", err)
	}
	p.frame = frame

	d := p.tracker.Detect(frame)
	p.mask = d.Mask
	p.found = d.Found
	if d.Found {
		p.pos = p.toWindow(float32(d.X), float32(d.Y))
	}
	return nil
}

// Position returns the last located token position.
func (p *Tracked) Position() math.Vec2 {
	return p.pos
}

// Found reports whether the token was located in the latest frame.
func (p *Tracked) Found() bool {
	return p.found
}

// Frame returns the latest frame, or nil before the first Update.
func (p *Tracked) Frame() image.Image {
	return p.frame
}

// Mask returns the threshold mask of the latest frame. It is nil while
// calibrating.
func (p *Tracked) Mask() image.Image {
	return p.mask
}

// Calibrating reports whether calibration samples are still needed.
func (p *Tracked) Calibrating() bool {
	return p.tracker.Calibrating()
}

// CalibrationTarget returns the next calibration point in window pixels.
func (p *Tracked) CalibrationTarget() (math.Vec2, bool) {
	pt, ok := p.tracker.Calibration().Next()
	if !ok {
		return math.Vec2{}, false
	}
	return p.toWindow(float32(pt.X), float32(pt.Y)), true
}

// Sample calibrates from the latest frame. It does nothing before the first frame.
func (p *Tracked) Sample() {
	if p.frame == nil {
		return
	}
	p.tracker.Sample(p.frame)
}

// Recalibrate discards the calibration.
func (p *Tracked) Recalibrate() {
	p.tracker.Recalibrate()
	p.found = false
	p.mask = nil
}

func (p *Tracked) toWindow(x, y float32) math.Vec2 {
	return math.Vec2{X: x, Y: y}.Mul(p.scale)
}
