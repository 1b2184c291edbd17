// Package tracker locates a coloured token in camera frames.
//
// A Calibration samples the token colour at fixed points of the frame to build an
// HSV range. Frames are thresholded against the widened range and eroded to drop
// speckle. The largest remaining blob within the area limits is the token.
package tracker

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV is a colour with hue in degrees [0,360) and saturation and value in percent [0,100].
type HSV struct {
	H, S, V float64
}

// ToHSV converts any color to HSV. Fully transparent colors are black.
func ToHSV(c color.Color) HSV {
	cf, _ := colorful.MakeColor(c)
	h, s, v := cf.Hsv()
	return HSV{H: h, S: s * 100, V: v * 100}
}

// Range is an inclusive per-channel HSV interval.
type Range struct {
	Min, Max HSV
}

// EmptyRange returns a range that contains nothing until a colour is included.
func EmptyRange() Range {
	return Range{
		Min: HSV{H: 360, S: 100, V: 100},
		Max: HSV{},
	}
}

// Empty reports whether no colour has been included.
func (r Range) Empty() bool {
	return r.Min.H > r.Max.H || r.Min.S > r.Max.S || r.Min.V > r.Max.V
}

// Include grows the range to cover c.
func (r *Range) Include(c HSV) {
	r.Min.H = min(r.Min.H, c.H)
	r.Min.S = min(r.Min.S, c.S)
	r.Min.V = min(r.Min.V, c.V)
	r.Max.H = max(r.Max.H, c.H)
	r.Max.S = max(r.Max.S, c.S)
	r.Max.V = max(r.Max.V, c.V)
}

// Widen returns the range grown by a hue margin and a saturation/value margin.
// Bounds are not wrapped or clamped.
func (r Range) Widen(hMargin, svMargin float64) Range {
	return Range{
		Min: HSV{H: r.Min.H - hMargin, S: r.Min.S - svMargin, V: r.Min.V - svMargin},
		Max: HSV{H: r.Max.H + hMargin, S: r.Max.S + svMargin, V: r.Max.V + svMargin},
	}
}

// Contains reports whether c lies inside the range on every channel.
func (r Range) Contains(c HSV) bool {
	return c.H >= r.Min.H && c.H <= r.Max.H &&
		c.S >= r.Min.S && c.S <= r.Max.S &&
		c.V >= r.Min.V && c.V <= r.Max.V
}
