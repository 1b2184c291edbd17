// Package world runs the simulation: a rotating box with spheres bouncing inside it.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/bouncebox/internal/game/box"
	"github.com/Faultbox/bouncebox/internal/game/entity"
	"github.com/Faultbox/bouncebox/internal/logger"
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// Projector converts a screen position to world space. Z is the normalized
// depth: -1 on the near plane and +1 on the far plane.
type Projector interface {
	ScreenToWorld(screen math.Vec3) math.Vec3
}

// Surface receives the world's draw calls.
type Surface interface {
	box.Surface
	// DrawSphere draws a solid sphere at center, positioned by model.
	DrawSphere(model math.Mat4, center math.Vec3, radius float32, c color.Color)
}

// Config holds world construction settings.
type Config struct {
	Box     box.Config
	Physics entity.Physics

	SphereRadius     float32
	SphereSeparation float32 // Spacing along X between neighbouring spheres
	SphereColors     []color.Color

	MarkerRadius float32
	MarkerColor  color.Color

	RotationStep  float32 // Degrees added to every axis per frame
	StartRotation math.Vec3
}

// DefaultConfig returns the standard three-sphere setup.
func DefaultConfig() Config {
	return Config{
		Box:              box.DefaultConfig(),
		Physics:          entity.DefaultPhysics(),
		SphereRadius:     5,
		SphereSeparation: 15,
		SphereColors:     []color.Color{color.Red, color.Green, color.Blue},
		MarkerRadius:     1,
		MarkerColor:      color.White,
		RotationStep:     0.75,
	}
}

// FrameReport summarizes what happened during one Update.
type FrameReport struct {
	WallHits int  // Spheres that bounced off a wall
	Pushed   bool // A trigger hit a sphere
}

// World owns the box, the spheres and the box rotation.
type World struct {
	cfg      Config
	box      *box.Box
	spheres  []*entity.Sphere
	rotation math.Vec3

	trigger        math.Vec2
	triggerPending bool
}

// New creates a world with the spheres at rest, spread along X.
func New(cfg Config) (*World, error) {
	if cfg.SphereRadius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", cfg.SphereRadius)
	}
	if cfg.Physics.Decay <= 0 || cfg.Physics.Decay >= 1 {
		return nil, fmt.Errorf("velocity decay must be in (0, 1), got %v", cfg.Physics.Decay)
	}

	b, err := box.New(cfg.Box)
	if err != nil {
		return nil, fmt.Errorf("create box: %w", err)
	}

	w := &World{
		cfg:      cfg,
		box:      b,
		rotation: wrapRotation(cfg.StartRotation),
	}

	mid := float32(len(cfg.SphereColors)-1) / 2
	for i, c := range cfg.SphereColors {
		center := math.Vec3{X: (float32(i) - mid) * cfg.SphereSeparation}
		w.spheres = append(w.spheres, entity.NewSphere(center, cfg.SphereRadius, c, cfg.Physics, b))
	}

	logger.Debug("world created",
		zap.Float32("side", cfg.Box.SideLength),
		zap.Int("subdivisions", cfg.Box.Subdivisions),
		zap.Int("spheres", len(w.spheres)))

	return w, nil
}

// Box returns the box.
func (w *World) Box() *box.Box {
	return w.box
}

// Spheres returns the spheres in creation order.
func (w *World) Spheres() []*entity.Sphere {
	return w.spheres
}

// Rotation returns the box rotation as Euler angles in degrees.
func (w *World) Rotation() math.Vec3 {
	return w.rotation
}

// SetRotation sets the box rotation.
func (w *World) SetRotation(r math.Vec3) {
	w.rotation = wrapRotation(r)
}

// Trigger requests a push at a screen position on the next Update.
// Only the latest request between updates is kept.
func (w *World) Trigger(screen math.Vec2) {
	w.trigger = screen
	w.triggerPending = true
}

// CancelTrigger drops a push requested since the last Update.
func (w *World) CancelTrigger() {
	w.triggerPending = false
}

// Update advances the simulation one frame: the box rotates, every sphere
// moves and bounces, then a pending trigger pushes the nearest sphere under it.
func (w *World) Update(p Projector) FrameReport {
	var report FrameReport

	step := w.cfg.RotationStep
	w.rotation = wrapRotation(w.rotation.Add(math.Vec3{X: step, Y: step, Z: step}))

	for _, s := range w.spheres {
		if s.Advance() != entity.HitNone {
			report.WallHits++
		}
	}

	if w.triggerPending {
		w.triggerPending = false
		report.Pushed = w.push(p, w.trigger)
	}

	return report
}

// push casts a ray through a screen position into the box and pushes the
// nearest sphere it hits.
func (w *World) push(p Projector, screen math.Vec2) bool {
	near := w.unrotate(p.ScreenToWorld(screen.WithDepth(-1)))
	far := w.unrotate(p.ScreenToWorld(screen.WithDepth(1)))
	dir := far.Sub(near)

	s, dist, ok := w.Pick(near, dir)
	if !ok {
		return false
	}

	hitPoint := near.Add(dir.Normalize().Scale(dist))
	s.ApplyImpulse(hitPoint, near)

	logger.Debug("sphere pushed",
		zap.Float32("distance", dist),
		zap.Float32("x", hitPoint.X),
		zap.Float32("y", hitPoint.Y),
		zap.Float32("z", hitPoint.Z))
	return true
}

// Pick returns the sphere nearest to origin along the ray, in box space.
func (w *World) Pick(origin, direction math.Vec3) (*entity.Sphere, float32, bool) {
	var (
		nearest *entity.Sphere
		best    float32
	)
	for _, s := range w.spheres {
		d, ok := s.FindRayIntersection(origin, direction)
		if !ok {
			continue
		}
		if nearest == nil || d < best {
			nearest, best = s, d
		}
	}
	return nearest, best, nearest != nil
}

// unrotate maps a world-space point into box space by undoing the rotation
// applied in Render.
func (w *World) unrotate(p math.Vec3) math.Vec3 {
	p = p.Rotate(-w.rotation.X, math.Vec3{X: 1})
	p = p.Rotate(-w.rotation.Y, math.Vec3{Y: 1})
	return p.Rotate(-w.rotation.Z, math.Vec3{Z: 1})
}

// Render draws the spheres, their click markers, then the box, all under the
// current rotation.
func (w *World) Render(s Surface) {
	model := math.EulerDegrees(w.rotation)

	for _, sp := range w.spheres {
		s.DrawSphere(model, sp.Center, sp.Radius(), sp.Color())
		if m, ok := sp.Marker(); ok {
			s.DrawSphere(model, m, w.cfg.MarkerRadius, w.cfg.MarkerColor)
		}
	}

	w.box.Render(s, model)
}

// wrapRotation resets each axis that has reached a full turn.
func wrapRotation(r math.Vec3) math.Vec3 {
	for axis := 0; axis < 3; axis++ {
		if a := r.Axis(axis); a >= 360 || a <= -360 {
			r = r.SetAxis(axis, 0)
		}
	}
	return r
}
