// Package box implements the wireframe box and the fading hit marks painted on its walls.
package box

import (
	"fmt"

	"github.com/Faultbox/bouncebox/internal/engine/mesh"
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// Config holds box construction settings.
type Config struct {
	SideLength     float32
	Subdivisions   int     // Grid cells per face edge
	FadeFactor     float32 // Decal alpha multiplier per render of its face
	FadeThreshold  float32 // Decals at or below this alpha are dropped
	WireframeColor color.Color
}

// DefaultConfig returns the standard box settings.
func DefaultConfig() Config {
	return Config{
		SideLength:     100,
		Subdivisions:   15,
		FadeFactor:     0.99,
		FadeThreshold:  0.05,
		WireframeColor: color.RGBA(255, 255, 255, 32),
	}
}

// Surface receives the box's draw calls.
type Surface interface {
	// SetDepthTest toggles depth testing for subsequent draws.
	SetDepthTest(enabled bool)
	// DrawStrip draws vertices as a filled triangle strip.
	DrawStrip(model math.Mat4, vertices []mesh.Vertex)
	// DrawWireframe draws the edges of a triangle strip.
	DrawWireframe(model math.Mat4, vertices []mesh.Vertex)
}

// Box is a cube centered at the origin whose faces are subdivided grids.
// Side length and subdivision count are fixed for the box's lifetime.
type Box struct {
	cfg       Config
	cellSize  float32
	faces     [NumFaces][]mesh.Strip
	placement [NumFaces]math.Mat4
	decals    []Decal
}

// New creates a box.
func New(cfg Config) (*Box, error) {
	if cfg.SideLength <= 0 {
		return nil, fmt.Errorf("side length must be positive, got %v", cfg.SideLength)
	}
	if cfg.Subdivisions < 1 {
		return nil, fmt.Errorf("subdivisions must be at least 1, got %d", cfg.Subdivisions)
	}
	if cfg.FadeFactor <= 0 || cfg.FadeFactor >= 1 {
		return nil, fmt.Errorf("fade factor must be in (0, 1), got %v", cfg.FadeFactor)
	}
	if cfg.FadeThreshold <= 0 || cfg.FadeThreshold >= 1 {
		return nil, fmt.Errorf("fade threshold must be in (0, 1), got %v", cfg.FadeThreshold)
	}

	b := &Box{
		cfg:      cfg,
		cellSize: cfg.SideLength / float32(cfg.Subdivisions),
	}
	for f := Face(0); f < NumFaces; f++ {
		b.faces[f] = mesh.NewGrid(cfg.Subdivisions, b.cellSize, color.Transparent)
		b.placement[f] = facePlacement(f, cfg.SideLength)
	}
	return b, nil
}

// SideLength returns the edge length of the box.
func (b *Box) SideLength() float32 {
	return b.cfg.SideLength
}

// Subdivisions returns the number of grid cells along each face edge.
func (b *Box) Subdivisions() int {
	return b.cfg.Subdivisions
}

// Placement returns the matrix positioning a face grid on its wall.
func (b *Box) Placement(f Face) math.Mat4 {
	return b.placement[f]
}

// Render draws all six faces under the given model matrix.
func (b *Box) Render(s Surface, model math.Mat4) {
	for f := Face(0); f < NumFaces; f++ {
		b.RenderFace(s, model, f)
	}
}

// RenderFace draws one face in two passes: the decal colors as filled strips over
// a transparent base, then the structural grid as wireframe. Every decal on the
// face fades once per call, and faded decals are dropped afterwards.
func (b *Box) RenderFace(s Surface, model math.Mat4, f Face) {
	rows := b.faces[f]

	for i := range rows {
		rows[i].Fill(color.Transparent)
	}

	for i := range b.decals {
		d := &b.decals[i]
		if d.Face != f {
			continue
		}
		rows[d.Row].SetColor(d.Col, d.Color)
		d.Color = d.Color.Fade(b.cfg.FadeFactor)
	}

	faceModel := model.Mul(b.placement[f])

	// Thin walls would otherwise occlude each other
	s.SetDepthTest(false)
	for i := range rows {
		s.DrawStrip(faceModel, rows[i].Vertices)
	}
	for i := range rows {
		rows[i].Fill(b.cfg.WireframeColor)
	}
	for i := range rows {
		s.DrawWireframe(faceModel, rows[i].Vertices)
	}
	s.SetDepthTest(true)

	b.purge()
}
