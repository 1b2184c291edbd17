// Package color provides an RGBA color with normalized float components.
package color

// Color represents an RGBA color with float components (0.0 to 1.0).
// A is opacity.
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	Transparent = Color{0, 0, 0, 0}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// FromBytes creates an opaque color from an [r, g, b] triple as stored in config files.
func FromBytes(rgb [3]uint8) Color {
	return RGB(rgb[0], rgb[1], rgb[2])
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Fade returns a copy of the color with alpha multiplied by factor.
func (c Color) Fade(factor float32) Color {
	return c.WithAlpha(c.A * factor)
}

// Array returns the components in RGBA order, for vertex buffers and uniforms.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
