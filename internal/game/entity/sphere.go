// Package entity implements the bouncing spheres confined to the box.
package entity

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/bouncebox/internal/engine/picking"
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// HitRecorder is the container a sphere bounces inside.
// The sphere does not own it.
type HitRecorder interface {
	SideLength() float32
	RecordHit(hitX, hitY, hitZ bool, point math.Vec3, c color.Color)
}

// Physics holds the motion constants shared by all spheres.
type Physics struct {
	Decay        float32 // Velocity multiplier applied every step
	ImpulseScale float32 // Speed added by a head-on push
}

// DefaultPhysics returns the standard motion constants.
func DefaultPhysics() Physics {
	return Physics{
		Decay:        0.99,
		ImpulseScale: 5,
	}
}

// Axis flags reported by Advance.
const (
	HitNone = iota
	HitX
	HitY
	HitZ
)

// Sphere is a colored ball moving freely inside a box.
type Sphere struct {
	Center   math.Vec3
	Velocity math.Vec3

	radius  float32
	color   color.Color
	physics Physics
	box     HitRecorder

	marker    math.Vec3
	hasMarker bool
}

// NewSphere creates a sphere at rest.
func NewSphere(center math.Vec3, radius float32, c color.Color, physics Physics, box HitRecorder) *Sphere {
	return &Sphere{
		Center:  center,
		radius:  radius,
		color:   c,
		physics: physics,
		box:     box,
	}
}

// Radius returns the sphere radius.
func (s *Sphere) Radius() float32 {
	return s.radius
}

// Color returns the base color.
func (s *Sphere) Color() color.Color {
	return s.color
}

// Marker returns the point of the last push, if any.
func (s *Sphere) Marker() (math.Vec3, bool) {
	return s.marker, s.hasMarker
}

// FindRayIntersection returns the distance along the ray to the sphere surface.
func (s *Sphere) FindRayIntersection(origin, direction math.Vec3) (float32, bool) {
	return picking.IntersectSphere(origin, direction, s.Center, s.radius)
}

// ApplyImpulse pushes the sphere away from hitPoint. The push is scaled by the
// cosine between the push direction and the line of sight from rayOrigin, so a
// glancing hit pushes less and a hit from behind the center slows the sphere.
func (s *Sphere) ApplyImpulse(hitPoint, rayOrigin math.Vec3) {
	s.marker = hitPoint
	s.hasMarker = true

	push := s.Center.Sub(hitPoint)
	if push.IsZero() {
		return
	}
	sight := s.Center.Sub(rayOrigin)
	strength := s.physics.ImpulseScale * math32.Cos(push.Angle(sight))

	s.Velocity = s.Velocity.Add(push.Normalize().Scale(strength))
}

// Advance moves the sphere one step and bounces it off at most one wall.
// Axes are checked x, y, then z; the first one outside the box is reflected,
// clamped onto its wall and reported to the box. Returns the axis hit, or HitNone.
func (s *Sphere) Advance() int {
	s.Center = s.Center.Add(s.Velocity)

	half := s.box.SideLength() / 2
	hit := HitNone
	for axis := 0; axis < 3; axis++ {
		p := s.Center.Axis(axis)
		if math32.Abs(p) <= half {
			continue
		}

		s.Velocity = s.Velocity.SetAxis(axis, -s.Velocity.Axis(axis))
		if p > 0 {
			s.Center = s.Center.SetAxis(axis, half)
		} else {
			s.Center = s.Center.SetAxis(axis, -half)
		}
		hit = HitX + axis
		s.box.RecordHit(hit == HitX, hit == HitY, hit == HitZ, s.Center, s.color)
		break
	}

	s.Velocity = s.Velocity.Scale(s.physics.Decay)
	return hit
}
