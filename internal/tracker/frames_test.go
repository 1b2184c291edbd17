package tracker

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writeFrame(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".bmp" {
		err = bmp.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestFrameSourceOrderAndLoop(t *testing.T) {
	dir := t.TempDir()
	green := color.RGBA{0, 255, 0, 255}
	writeFrame(t, filepath.Join(dir, "frame_002.png"), solid(4, 2, blue))
	writeFrame(t, filepath.Join(dir, "frame_001.png"), solid(4, 2, red))
	writeFrame(t, filepath.Join(dir, "frame_003.bmp"), solid(4, 2, green))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	src, err := OpenFrames(dir, 4, 2, false)
	if err != nil {
		t.Fatalf("OpenFrames: %v", err)
	}
	if src.Len() != 3 {
		t.Fatalf("Len = %d, want 3", src.Len())
	}

	want := []color.Color{red, blue, green, red, blue}
	for i, c := range want {
		img, err := src.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !sameColor(img.At(0, 0), c) {
			t.Errorf("frame %d color = %v, want %v", i, img.At(0, 0), c)
		}
	}
}

func TestFrameSourceResizes(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, filepath.Join(dir, "a.png"), solid(16, 8, red))

	src, err := OpenFrames(dir, 4, 2, false)
	if err != nil {
		t.Fatalf("OpenFrames: %v", err)
	}
	img, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("frame size = %dx%d, want 4x2", b.Dx(), b.Dy())
	}
	if w, h := src.Size(); w != 4 || h != 2 {
		t.Errorf("Size = %dx%d, want 4x2", w, h)
	}
}

func TestFrameSourceMirrors(t *testing.T) {
	dir := t.TempDir()
	img := solid(2, 1, red)
	img.Set(1, 0, blue)
	writeFrame(t, filepath.Join(dir, "a.png"), img)

	src, err := OpenFrames(dir, 2, 1, true)
	if err != nil {
		t.Fatalf("OpenFrames: %v", err)
	}
	frame, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	b := frame.Bounds()
	if !sameColor(frame.At(b.Min.X, b.Min.Y), blue) || !sameColor(frame.At(b.Min.X+1, b.Min.Y), red) {
		t.Errorf("frame not mirrored: left %v, right %v", frame.At(b.Min.X, b.Min.Y), frame.At(b.Min.X+1, b.Min.Y))
	}
}

func TestFrameSourceSkipsCorruptFrame(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeFrame(t, filepath.Join(dir, "b.png"), solid(2, 2, red))

	src, err := OpenFrames(dir, 2, 2, false)
	if err != nil {
		t.Fatalf("OpenFrames: %v", err)
	}
	if _, err := src.Next(); err == nil {
		t.Error("expected decode error for corrupt frame")
	}
	if _, err := src.Next(); err != nil {
		t.Errorf("next frame should decode: %v", err)
	}
}

func TestOpenFramesErrors(t *testing.T) {
	empty := t.TempDir()
	withFrame := t.TempDir()
	writeFrame(t, filepath.Join(withFrame, "0001.png"), solid(4, 2, red))

	tests := []struct {
		name          string
		dir           string
		width, height int
		want          error
	}{
		{"empty dir", empty, 4, 2, ErrNoFrames},
		{"missing dir", filepath.Join(empty, "missing"), 4, 2, nil},
		{"zero width", withFrame, 0, 2, nil},
		{"negative height", withFrame, 4, -2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenFrames(tt.dir, tt.width, tt.height, false)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
