package tracker

import (
	"image"
	"image/color"
	"testing"
)

func TestCalibrationPoints(t *testing.T) {
	c := NewCalibration(320, 240)
	want := []image.Point{{80, 60}, {240, 60}, {240, 180}, {80, 180}}

	frame := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for i, p := range want {
		got, ok := c.Next()
		if !ok {
			t.Fatalf("sample %d: calibration finished early", i)
		}
		if got != p {
			t.Errorf("sample %d point = %v, want %v", i, got, p)
		}
		done := c.Sample(frame)
		if done != (i == len(want)-1) {
			t.Errorf("sample %d: done = %v", i, done)
		}
	}

	if _, ok := c.Next(); ok {
		t.Error("Next should fail once calibration is done")
	}
}

func TestCalibrationCollectsRange(t *testing.T) {
	c := NewCalibration(8, 8)
	frame := image.NewRGBA(image.Rect(0, 0, 8, 8))
	frame.Set(2, 2, color.RGBA{255, 0, 0, 255})
	frame.Set(6, 2, color.RGBA{255, 255, 0, 255})
	frame.Set(6, 6, color.RGBA{128, 0, 0, 255})
	frame.Set(2, 6, color.RGBA{255, 128, 128, 255})

	if !c.Range().Empty() {
		t.Fatal("range should be empty before sampling")
	}
	for !c.Done() {
		c.Sample(frame)
	}

	r := c.Range()
	if !hsvApprox(r.Min, HSV{0, 49.80392156862745, 50.19607843137255}) {
		t.Errorf("min = %+v", r.Min)
	}
	if !hsvApprox(r.Max, HSV{60, 100, 100}) {
		t.Errorf("max = %+v", r.Max)
	}

	// Further samples are ignored
	frame.Set(2, 2, color.RGBA{0, 0, 255, 255})
	if !c.Sample(frame) {
		t.Error("Sample on finished calibration should report done")
	}
	if c.Range() != r {
		t.Error("range changed after calibration finished")
	}
}

func TestCalibrationUsesFrameOrigin(t *testing.T) {
	c := NewCalibration(8, 8)
	frame := image.NewRGBA(image.Rect(10, 10, 18, 18))
	frame.Set(12, 12, color.RGBA{0, 0, 255, 255})

	c.Sample(frame)
	if r := c.Range(); !hsvApprox(r.Max, HSV{240, 100, 100}) {
		t.Errorf("sample should read relative to frame bounds, got %+v", r)
	}
}

func TestCalibrationReset(t *testing.T) {
	c := NewCalibration(8, 8)
	frame := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for !c.Done() {
		c.Sample(frame)
	}

	c.Reset()
	if c.Done() || c.Samples() != 0 {
		t.Errorf("reset calibration: done %v, samples %d", c.Done(), c.Samples())
	}
	if !c.Range().Empty() {
		t.Error("reset should empty the range")
	}
	if p, _ := c.Next(); p != (image.Point{2, 2}) {
		t.Errorf("next point after reset = %v, want (2,2)", p)
	}
}
