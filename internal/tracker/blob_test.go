package tracker

import (
	"image"
	"image/color"
	"testing"
)

func fillMask(m *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetGray(x, y, color.Gray{Y: 255})
		}
	}
}

func testMask() *image.Gray {
	m := image.NewGray(image.Rect(0, 0, 40, 20))
	fillMask(m, image.Rect(2, 2, 7, 7))    // 25
	fillMask(m, image.Rect(20, 10, 30, 14)) // 40
	// Diagonal chain joins only with 8-connectivity
	m.SetGray(12, 2, color.Gray{Y: 255})
	m.SetGray(13, 3, color.Gray{Y: 255})
	m.SetGray(14, 4, color.Gray{Y: 255})
	return m
}

func TestFindBlobs(t *testing.T) {
	blobs := FindBlobs(testMask(), 1, 1000)
	if len(blobs) != 3 {
		t.Fatalf("found %d blobs, want 3: %+v", len(blobs), blobs)
	}

	want := []Blob{
		{Area: 40, Bounds: image.Rect(20, 10, 30, 14)},
		{Area: 25, Bounds: image.Rect(2, 2, 7, 7)},
		{Area: 3, Bounds: image.Rect(12, 2, 15, 5)},
	}
	for i, w := range want {
		if blobs[i] != w {
			t.Errorf("blob %d = %+v, want %+v", i, blobs[i], w)
		}
	}
}

func TestFindBlobsAreaLimits(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		areas    []int
	}{
		{"all", 1, 1000, []int{40, 25, 3}},
		{"drop small", 10, 1000, []int{40, 25}},
		{"drop large", 1, 30, []int{25, 3}},
		{"inclusive bounds", 25, 25, []int{25}},
		{"none", 50, 1000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := FindBlobs(testMask(), tt.min, tt.max)
			if len(blobs) != len(tt.areas) {
				t.Fatalf("found %d blobs, want %d", len(blobs), len(tt.areas))
			}
			for i, a := range tt.areas {
				if blobs[i].Area != a {
					t.Errorf("blob %d area = %d, want %d", i, blobs[i].Area, a)
				}
			}
		})
	}
}

func TestFindBlobsOffsetBounds(t *testing.T) {
	m := image.NewGray(image.Rect(100, 50, 120, 60))
	fillMask(m, image.Rect(104, 52, 108, 56))

	blobs := FindBlobs(m, 1, 1000)
	if len(blobs) != 1 {
		t.Fatalf("found %d blobs, want 1", len(blobs))
	}
	if want := image.Rect(104, 52, 108, 56); blobs[0].Bounds != want {
		t.Errorf("bounds = %v, want %v", blobs[0].Bounds, want)
	}
}

func TestBlobCenter(t *testing.T) {
	tests := []struct {
		bounds image.Rectangle
		x, y   float64
	}{
		{image.Rect(20, 10, 30, 14), 25, 12},
		{image.Rect(0, 0, 1, 1), 0.5, 0.5},
		{image.Rect(3, 4, 6, 9), 4.5, 6.5},
	}

	for _, tt := range tests {
		x, y := Blob{Bounds: tt.bounds}.Center()
		if x != tt.x || y != tt.y {
			t.Errorf("Center(%v) = (%v, %v), want (%v, %v)", tt.bounds, x, y, tt.x, tt.y)
		}
	}
}

func TestThreshold(t *testing.T) {
	frame := image.NewRGBA(image.Rect(5, 5, 9, 6))
	frame.Set(5, 5, color.RGBA{255, 0, 0, 255})
	frame.Set(6, 5, color.RGBA{0, 0, 255, 255})
	frame.Set(7, 5, color.RGBA{250, 5, 5, 255})
	frame.Set(8, 5, color.RGBA{255, 255, 255, 255})

	r := Range{Min: HSV{0, 90, 90}, Max: HSV{5, 100, 100}}
	mask := Threshold(frame, r)

	if mask.Bounds() != image.Rect(0, 0, 4, 1) {
		t.Fatalf("mask bounds = %v", mask.Bounds())
	}
	want := []uint8{255, 0, 255, 0}
	for x, w := range want {
		if got := mask.GrayAt(x, 0).Y; got != w {
			t.Errorf("mask[%d] = %d, want %d", x, got, w)
		}
	}
}

func TestErode(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 20, 20))
	fillMask(m, image.Rect(5, 5, 14, 14))
	m.SetGray(1, 1, color.Gray{Y: 255})

	if Erode(m, 0) != image.Image(m) {
		t.Error("radius 0 should return the mask unchanged")
	}

	eroded := Erode(m, 1)
	blobs := FindBlobs(eroded, 1, 1000)
	if len(blobs) != 1 {
		t.Fatalf("found %d blobs after erosion, want 1 (speckle removed)", len(blobs))
	}
	if blobs[0].Area >= 81 {
		t.Errorf("eroded area = %d, want < 81", blobs[0].Area)
	}
	if x, y := blobs[0].Center(); x != 9.5 || y != 9.5 {
		t.Errorf("eroded center = (%v, %v), want (9.5, 9.5)", x, y)
	}
}
