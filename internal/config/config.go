// Package config handles configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Box      BoxConfig      `yaml:"box"`
	Spheres  SpheresConfig  `yaml:"spheres"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Rotation RotationConfig `yaml:"rotation"`
	Camera   CameraConfig   `yaml:"camera"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	ScreenshotDir string `yaml:"screenshot_dir"` // F12 saves here; empty means the working directory
}

// BoxConfig holds the box geometry and hit mark settings.
type BoxConfig struct {
	SideLength     float32 `yaml:"side_length"`
	Subdivisions   int     `yaml:"subdivisions"`
	FadeFactor     float32 `yaml:"fade_factor"`
	FadeThreshold  float32 `yaml:"fade_threshold"`
	WireframeAlpha uint8   `yaml:"wireframe_alpha"`
}

// SpheresConfig holds sphere settings. One sphere is created per color.
type SpheresConfig struct {
	Radius     float32    `yaml:"radius"`
	Separation float32    `yaml:"separation"`
	Colors     [][3]uint8 `yaml:"colors"` // [r, g, b], 0-255
}

// PhysicsConfig holds motion constants.
type PhysicsConfig struct {
	Decay        float32 `yaml:"decay"`
	ImpulseScale float32 `yaml:"impulse_scale"`
}

// RotationConfig holds box rotation settings.
type RotationConfig struct {
	StepDegrees float32 `yaml:"step_degrees"`
	RandomStart bool    `yaml:"random_start"`
}

// CameraConfig holds the view settings.
type CameraConfig struct {
	Distance   float32 `yaml:"distance"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// TrackerConfig holds color token tracking settings.
// With an empty FramesDir the mouse cursor stands in for the token.
type TrackerConfig struct {
	FramesDir   string  `yaml:"frames_dir"`
	FrameWidth  int     `yaml:"frame_width"`
	FrameHeight int     `yaml:"frame_height"`
	HMargin     float64 `yaml:"h_margin"`  // Degrees
	SVMargin    float64 `yaml:"sv_margin"` // Percent
	MinBlobArea int     `yaml:"min_blob_area"`
	MaxBlobArea int     `yaml:"max_blob_area"`
	ErodeRadius float64 `yaml:"erode_radius"`
	Mirror      bool    `yaml:"mirror"` // Flip frames horizontally before tracking
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the standard values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "BounceBox",
			Width:  640,
			Height: 480,
			VSync:  true,
		},
		Box: BoxConfig{
			SideLength:     100,
			Subdivisions:   15,
			FadeFactor:     0.99,
			FadeThreshold:  0.05,
			WireframeAlpha: 32,
		},
		Spheres: SpheresConfig{
			Radius:     5,
			Separation: 15,
			Colors: [][3]uint8{
				{255, 0, 0},
				{0, 255, 0},
				{0, 0, 255},
			},
		},
		Physics: PhysicsConfig{
			Decay:        0.99,
			ImpulseScale: 5,
		},
		Rotation: RotationConfig{
			StepDegrees: 0.75,
			RandomStart: true,
		},
		Camera: CameraConfig{
			Distance:   195,
			FOVDegrees: 60,
			Near:       1,
			Far:        2000,
		},
		Tracker: TrackerConfig{
			FrameWidth:  320,
			FrameHeight: 240,
			HMargin:     1,
			SVMargin:    5,
			MinBlobArea: 10,
			MaxBlobArea: 1000,
			ErodeRadius: 1,
			Mirror:      true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Box.SideLength <= 0 {
		errs = append(errs, fmt.Errorf("box.side_length must be positive, got %v", c.Box.SideLength))
	}
	if c.Box.Subdivisions < 1 {
		errs = append(errs, fmt.Errorf("box.subdivisions must be at least 1, got %d", c.Box.Subdivisions))
	}
	if c.Box.FadeFactor <= 0 || c.Box.FadeFactor >= 1 {
		errs = append(errs, fmt.Errorf("box.fade_factor must be in (0, 1), got %v", c.Box.FadeFactor))
	}
	if c.Box.FadeThreshold <= 0 || c.Box.FadeThreshold >= 1 {
		errs = append(errs, fmt.Errorf("box.fade_threshold must be in (0, 1), got %v", c.Box.FadeThreshold))
	}
	if c.Physics.Decay <= 0 || c.Physics.Decay >= 1 {
		errs = append(errs, fmt.Errorf("physics.decay must be in (0, 1), got %v", c.Physics.Decay))
	}
	if c.Spheres.Radius <= 0 {
		errs = append(errs, fmt.Errorf("spheres.radius must be positive, got %v", c.Spheres.Radius))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got %v and %v", c.Camera.Near, c.Camera.Far))
	}
	if c.Tracker.MinBlobArea > c.Tracker.MaxBlobArea {
		errs = append(errs, fmt.Errorf("tracker.min_blob_area %d exceeds max_blob_area %d", c.Tracker.MinBlobArea, c.Tracker.MaxBlobArea))
	}
	if c.Tracker.FramesDir != "" && (c.Tracker.FrameWidth <= 0 || c.Tracker.FrameHeight <= 0) {
		errs = append(errs, fmt.Errorf("tracker.frame_width and frame_height must be positive, got %dx%d", c.Tracker.FrameWidth, c.Tracker.FrameHeight))
	}

	return errors.Join(errs...)
}
