package tracker

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/bouncebox/internal/logger"
)

// Options tunes detection.
type Options struct {
	HMargin     float64 // Degrees added either side of the calibrated hue range
	SVMargin    float64 // Percent added either side of the saturation and value ranges
	MinBlobArea int
	MaxBlobArea int
	ErodeRadius float64
}

// DefaultOptions returns the stock detection settings.
func DefaultOptions() Options {
	return Options{
		HMargin:     1,
		SVMargin:    5,
		MinBlobArea: 10,
		MaxBlobArea: 1000,
		ErodeRadius: 1,
	}
}

// Tracker calibrates against and then follows a coloured token.
type Tracker struct {
	opts  Options
	calib *Calibration
	log   *zap.Logger
}

// New creates a tracker for frames of the given size.
func New(width, height int, opts Options) *Tracker {
	return &Tracker{
		opts:  opts,
		calib: NewCalibration(width, height),
		log:   logger.Named("tracker"),
	}
}

// Calibration returns the tracker's calibration state.
func (t *Tracker) Calibration() *Calibration {
	return t.calib
}

// Calibrating reports whether samples are still needed.
func (t *Tracker) Calibrating() bool {
	return !t.calib.Done()
}

// Sample takes the next calibration sample from frame. It does nothing once
// calibration is complete.
func (t *Tracker) Sample(frame image.Image) {
	if t.calib.Done() {
		return
	}
	n := t.calib.Samples()
	if !t.calib.Sample(frame) {
		t.log.Debug("calibration sample taken", zap.Int("sample", n+1))
		return
	}
	r := t.calib.Range()
	t.log.Info("calibration complete",
		zap.Float64s("min_hsv", []float64{r.Min.H, r.Min.S, r.Min.V}),
		zap.Float64s("max_hsv", []float64{r.Max.H, r.Max.S, r.Max.V}),
	)
}

// Recalibrate discards the calibration.
func (t *Tracker) Recalibrate() {
	t.calib.Reset()
	t.log.Info("calibration reset")
}

// Mask returns the eroded threshold mask for a frame.
func (t *Tracker) Mask(frame image.Image) image.Image {
	r := t.calib.Range().Widen(t.opts.HMargin, t.opts.SVMargin)
	return Erode(Threshold(frame, r), t.opts.ErodeRadius)
}

// Detection is the outcome of looking for the token in one frame.
type Detection struct {
	Mask  image.Image // Eroded threshold mask
	X, Y  float64     // Bounding-box centre in frame pixels
	Found bool
}

// Detect thresholds a frame and finds the token in it. The mask is nil while
// calibrating.
func (t *Tracker) Detect(frame image.Image) Detection {
	if t.Calibrating() {
		return Detection{}
	}
	d := Detection{Mask: t.Mask(frame)}
	blobs := FindBlobs(d.Mask, t.opts.MinBlobArea, t.opts.MaxBlobArea)
	if len(blobs) > 0 {
		d.X, d.Y = blobs[0].Center()
		d.Found = true
	}
	return d
}

// Locate finds the token in a frame and returns the centre of its bounding box
// in frame pixels. It fails while calibrating or when no blob qualifies.
func (t *Tracker) Locate(frame image.Image) (x, y float64, ok bool) {
	d := t.Detect(frame)
	return d.X, d.Y, d.Found
}
