package world

import (
	"math/rand"

	"github.com/Faultbox/bouncebox/internal/config"
	"github.com/Faultbox/bouncebox/internal/game/box"
	"github.com/Faultbox/bouncebox/internal/game/entity"
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// ConfigFrom builds world settings from the application config. When a random
// start is configured rng draws each start angle from [0, 360).
func ConfigFrom(cfg *config.Config, rng *rand.Rand) Config {
	wc := DefaultConfig()

	wc.Box = box.Config{
		SideLength:     cfg.Box.SideLength,
		Subdivisions:   cfg.Box.Subdivisions,
		FadeFactor:     cfg.Box.FadeFactor,
		FadeThreshold:  cfg.Box.FadeThreshold,
		WireframeColor: color.RGBA(255, 255, 255, cfg.Box.WireframeAlpha),
	}
	wc.Physics = entity.Physics{
		Decay:        cfg.Physics.Decay,
		ImpulseScale: cfg.Physics.ImpulseScale,
	}
	wc.SphereRadius = cfg.Spheres.Radius
	wc.SphereSeparation = cfg.Spheres.Separation

	wc.SphereColors = make([]color.Color, 0, len(cfg.Spheres.Colors))
	for _, c := range cfg.Spheres.Colors {
		wc.SphereColors = append(wc.SphereColors, color.FromBytes(c))
	}

	wc.RotationStep = cfg.Rotation.StepDegrees
	if cfg.Rotation.RandomStart && rng != nil {
		wc.StartRotation = math.Vec3{
			X: rng.Float32() * 360,
			Y: rng.Float32() * 360,
			Z: rng.Float32() * 360,
		}
	}

	return wc
}
