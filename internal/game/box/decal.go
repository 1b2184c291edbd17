package box

import (
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// Decal colors one vertex of a face grid. Row indexes the strip and Col the
// vertex within it, so a cell (r, c) is bounded by vertices 2c..2c+3 of row r.
type Decal struct {
	Face  Face
	Row   int
	Col   int
	Color color.Color
}

// Decals returns the active decals. The slice must not be modified.
func (b *Box) Decals() []Decal {
	return b.decals
}

// DecalCount returns the number of active decals on a face.
func (b *Box) DecalCount(f Face) int {
	n := 0
	for _, d := range b.decals {
		if d.Face == f {
			n++
		}
	}
	return n
}

// RecordHit marks the wall struck at point. The hit flags name the axis whose
// wall was reached; the sign of that coordinate picks the face. The mark is a
// cross of decals around the cell containing the point, starting fully opaque.
func (b *Box) RecordHit(hitX, hitY, hitZ bool, point math.Vec3, c color.Color) {
	x := b.cellIndex(point.X)
	y := b.cellIndex(point.Y)
	z := b.cellIndex(point.Z)

	c = c.WithAlpha(1)
	switch {
	case hitZ && point.Z > 0:
		b.addCluster(FaceFront, y, x, c)
	case hitZ && point.Z < 0:
		b.addCluster(FaceBack, y, x, c)
	case hitX && point.X > 0:
		b.addCluster(FaceRight, y, z, c)
	case hitX && point.X < 0:
		b.addCluster(FaceLeft, y, z, c)
	case hitY && point.Y > 0:
		b.addCluster(FaceTop, z, x, c)
	case hitY && point.Y < 0:
		b.addCluster(FaceBottom, z, x, c)
	}
}

// cellIndex converts a coordinate in [-side/2, side/2] to a grid cell index,
// clamping points on or beyond the walls to the outermost cells.
func (b *Box) cellIndex(coord float32) int {
	f := (coord + b.cfg.SideLength/2) / b.cellSize
	if f < 0 {
		return 0
	}
	i := int(f)
	if i >= b.cfg.Subdivisions {
		i = b.cfg.Subdivisions - 1
	}
	return i
}

// addCluster adds the four corners of the cell plus the adjoining vertices of
// the rows below and above, when those rows exist.
func (b *Box) addCluster(f Face, row, col int, c color.Color) {
	base := col * 2

	for i := 0; i < 4; i++ {
		b.decals = append(b.decals, Decal{Face: f, Row: row, Col: base + i, Color: c})
	}
	if row > 0 {
		b.decals = append(b.decals,
			Decal{Face: f, Row: row - 1, Col: base + 1, Color: c},
			Decal{Face: f, Row: row - 1, Col: base + 3, Color: c},
		)
	}
	if row < b.cfg.Subdivisions-1 {
		b.decals = append(b.decals,
			Decal{Face: f, Row: row + 1, Col: base, Color: c},
			Decal{Face: f, Row: row + 1, Col: base + 2, Color: c},
		)
	}
}

// purge drops decals that have faded to the threshold.
func (b *Box) purge() {
	kept := b.decals[:0]
	for _, d := range b.decals {
		if d.Color.A > b.cfg.FadeThreshold {
			kept = append(kept, d)
		}
	}
	b.decals = kept
}
