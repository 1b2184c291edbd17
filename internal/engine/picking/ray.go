// Package picking provides ray casting and object picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/bouncebox/pkg/math"
)

// Ray represents a ray in 3D space. Direction does not need to be normalized.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// RayThrough returns the ray starting at from and passing through to.
func RayThrough(from, to math.Vec3) Ray {
	return Ray{Origin: from, Direction: to.Sub(from)}
}

// At returns the point at distance t along the ray.
// Returns the origin for a zero-length direction.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Normalize().Scale(t))
}

// IntersectSphere tests the ray against a sphere. See IntersectSphere.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	return IntersectSphere(r.Origin, r.Direction, center, radius)
}

// IntersectSphere returns the distance from origin to the near intersection of the
// ray with the sphere. hit is false when the direction has no length, the ray misses
// or only grazes the sphere, or the near intersection is at or behind the origin.
func IntersectSphere(origin, direction, center math.Vec3, radius float32) (t float32, hit bool) {
	dir := direction.Normalize()
	if dir.IsZero() {
		return 0, false
	}

	// Signed distance along the ray to the point closest to the center
	toCenter := center.Sub(origin)
	along := toCenter.Dot(dir)
	closest := origin.Add(dir.Scale(along))

	perp := closest.Distance(center)
	if perp >= radius {
		return 0, false
	}

	halfChord := math32.Sqrt(radius*radius - perp*perp)
	t = along - halfChord
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// Unproject converts a screen point to world space.
// screen.X, screen.Y are pixel coordinates with the origin at the top-left;
// screen.Z is the normalized depth (-1 near plane, 1 far plane).
// invViewProj is the inverse of the view-projection matrix.
func Unproject(screen math.Vec3, viewportW, viewportH float32, invViewProj math.Mat4) math.Vec3 {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screen.X/viewportW - 1.0
	ndcY := 1.0 - 2.0*screen.Y/viewportH // Flip Y

	return invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: screen.Z})
}
