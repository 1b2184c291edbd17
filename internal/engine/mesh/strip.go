// Package mesh provides CPU-side vertex data shared by the simulation and the renderer.
package mesh

import (
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// Vertex is a position with a per-vertex color.
type Vertex struct {
	Position math.Vec3
	Color    color.Color
}

// Strip is a row of vertices drawn as a triangle strip.
// Vertices alternate between the lower and upper edge of the row:
// even indices lie on the lower edge, odd indices on the upper edge.
type Strip struct {
	Vertices []Vertex
}

// Fill sets every vertex to the same color.
func (s *Strip) Fill(c color.Color) {
	for i := range s.Vertices {
		s.Vertices[i].Color = c
	}
}

// SetColor sets the color of a single vertex. Out-of-range indices are ignored.
func (s *Strip) SetColor(index int, c color.Color) {
	if index < 0 || index >= len(s.Vertices) {
		return
	}
	s.Vertices[index].Color = c
}

// NewGrid builds a square grid of n rows, each a strip of n cells with the given
// cell edge length, lying in the XY plane with its corner at the origin.
// Row i spans y in [i*cell, (i+1)*cell] and has 2*(n+1) vertices.
func NewGrid(n int, cell float32, c color.Color) []Strip {
	rows := make([]Strip, n)
	for i := 0; i < n; i++ {
		y := float32(i) * cell
		verts := make([]Vertex, 0, 2*(n+1))
		for j := 0; j <= n; j++ {
			x := float32(j) * cell
			verts = append(verts,
				Vertex{Position: math.Vec3{X: x, Y: y}, Color: c},
				Vertex{Position: math.Vec3{X: x, Y: y + cell}, Color: c},
			)
		}
		rows[i] = Strip{Vertices: verts}
	}
	return rows
}
