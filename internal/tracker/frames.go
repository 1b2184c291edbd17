package tracker

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/bouncebox/internal/logger"
)

// ErrNoFrames is returned when a frames directory holds no images.
var ErrNoFrames = errors.New("no frames found")

var frameExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
}

// FrameSource replays a directory of images in name order, looping forever.
// Frames are scaled to a fixed size and optionally mirrored.
type FrameSource struct {
	paths  []string
	next   int
	width  int
	height int
	mirror bool
}

// OpenFrames lists the png, jpeg and bmp files in dir.
func OpenFrames(dir string, width, height int, mirror bool) (*FrameSource, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", width, height)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoFrames)
	}
	sort.Strings(paths)

	logger.Debug("frame source opened",
		zap.String("dir", dir),
		zap.Int("frames", len(paths)),
	)

	return &FrameSource{
		paths:  paths,
		width:  width,
		height: height,
		mirror: mirror,
	}, nil
}

// Len returns the number of frames in one loop.
func (s *FrameSource) Len() int {
	return len(s.paths)
}

// Size returns the size every frame is scaled to.
func (s *FrameSource) Size() (width, height int) {
	return s.width, s.height
}

// Next decodes the next frame. A frame that fails to decode is skipped on the following call.
func (s *FrameSource) Next() (image.Image, error) {
	path := s.paths[s.next]
	s.next = (s.next + 1) % len(s.paths)

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", filepath.Base(path), err)
	}

	if b := img.Bounds(); b.Dx() != s.width || b.Dy() != s.height {
		img = transform.Resize(img, s.width, s.height, transform.Linear)
	}
	if s.mirror {
		img = transform.FlipH(img)
	}
	return img, nil
}
