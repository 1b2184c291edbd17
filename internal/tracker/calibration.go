package tracker

import (
	"image"
)

// CalibrationPoints is the number of samples taken before tracking starts.
const CalibrationPoints = 4

// Calibration collects the token colour range from samples at the quarter points
// of the frame, clockwise from the top left.
type Calibration struct {
	points  [CalibrationPoints]image.Point
	samples int
	rng     Range
}

// NewCalibration creates a calibration for frames of the given size.
func NewCalibration(width, height int) *Calibration {
	c := &Calibration{
		points: [CalibrationPoints]image.Point{
			{X: width / 4, Y: height / 4},
			{X: 3 * width / 4, Y: height / 4},
			{X: 3 * width / 4, Y: 3 * height / 4},
			{X: width / 4, Y: 3 * height / 4},
		},
	}
	c.Reset()
	return c
}

// Reset discards all samples and restarts calibration.
func (c *Calibration) Reset() {
	c.samples = 0
	c.rng = EmptyRange()
}

// Done reports whether every point has been sampled.
func (c *Calibration) Done() bool {
	return c.samples >= CalibrationPoints
}

// Samples returns how many points have been sampled.
func (c *Calibration) Samples() int {
	return c.samples
}

// Next returns the frame coordinate to hold the token over for the next sample.
func (c *Calibration) Next() (image.Point, bool) {
	if c.Done() {
		return image.Point{}, false
	}
	return c.points[c.samples], true
}

// Sample reads the colour under the next point and reports whether calibration
// is now complete. Sampling a finished calibration does nothing.
func (c *Calibration) Sample(frame image.Image) bool {
	p, ok := c.Next()
	if !ok {
		return true
	}
	b := frame.Bounds()
	c.rng.Include(ToHSV(frame.At(b.Min.X+p.X, b.Min.Y+p.Y)))
	c.samples++
	return c.Done()
}

// Range returns the sampled colour range. It is empty until the first sample.
func (c *Calibration) Range() Range {
	return c.rng
}
