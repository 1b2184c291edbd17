package tracker

import (
	"image"
	"image/color"
	"sort"

	"github.com/anthonynsimon/bild/effect"
)

// Blob is a connected region of the threshold mask.
type Blob struct {
	Area   int // Pixel count
	Bounds image.Rectangle
}

// Center returns the centre of the blob's bounding rectangle.
func (b Blob) Center() (x, y float64) {
	return float64(b.Bounds.Min.X) + float64(b.Bounds.Dx())/2,
		float64(b.Bounds.Min.Y) + float64(b.Bounds.Dy())/2
}

// Threshold returns a mask that is white wherever the frame colour is inside r.
func Threshold(frame image.Image, r Range) *image.Gray {
	b := frame.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r.Contains(ToHSV(frame.At(x, y))) {
				mask.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

// Erode shrinks the white regions of a mask. A radius below 1 leaves it unchanged.
func Erode(mask image.Image, radius float64) image.Image {
	if radius < 1 {
		return mask
	}
	return effect.Erode(mask, radius)
}

// FindBlobs labels the 8-connected white regions of a mask and returns those whose
// area lies in [minArea, maxArea], largest first.
func FindBlobs(mask image.Image, minArea, maxArea int) []Blob {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	on := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray := color.GrayModel.Convert(mask.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			on[y*w+x] = gray.Y >= 128
		}
	}

	var blobs []Blob
	seen := make([]bool, w*h)
	var stack []int
	for start := range on {
		if !on[start] || seen[start] {
			continue
		}

		blob := Blob{Bounds: image.Rect(start%w, start/w, start%w+1, start/w+1)}
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			blob.Area++
			blob.Bounds = blob.Bounds.Union(image.Rect(x, y, x+1, y+1))

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := ny*w + nx
					if on[j] && !seen[j] {
						seen[j] = true
						stack = append(stack, j)
					}
				}
			}
		}

		if blob.Area >= minArea && blob.Area <= maxArea {
			blob.Bounds = blob.Bounds.Add(b.Min)
			blobs = append(blobs, blob)
		}
	}

	sort.SliceStable(blobs, func(i, j int) bool {
		return blobs[i].Area > blobs[j].Area
	})
	return blobs
}
