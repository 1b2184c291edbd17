package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/bouncebox/pkg/math"
)

// Sphere is an indexed triangle mesh of a unit sphere centered at the origin.
// Positions double as normals.
type Sphere struct {
	Positions []math.Vec3
	Indices   []uint32
}

// NewUVSphere builds a unit sphere from latitude stacks and longitude slices.
func NewUVSphere(stacks, slices int) Sphere {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}

	var s Sphere
	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks) // 0 at +Y pole
		y := math32.Cos(phi)
		r := math32.Sin(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			s.Positions = append(s.Positions, math.Vec3{
				X: r * math32.Cos(theta),
				Y: y,
				Z: r * math32.Sin(theta),
			})
		}
	}

	ring := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*ring + uint32(j)
			b := a + ring
			s.Indices = append(s.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}
	return s
}
