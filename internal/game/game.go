// Package game implements the main loop: input, pointer tracking, simulation
// and rendering.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bouncebox/internal/config"
	"github.com/Faultbox/bouncebox/internal/engine/audio"
	"github.com/Faultbox/bouncebox/internal/engine/camera"
	"github.com/Faultbox/bouncebox/internal/engine/input"
	"github.com/Faultbox/bouncebox/internal/engine/renderer"
	"github.com/Faultbox/bouncebox/internal/engine/screenshot"
	"github.com/Faultbox/bouncebox/internal/engine/window"
	"github.com/Faultbox/bouncebox/internal/game/controls"
	"github.com/Faultbox/bouncebox/internal/game/token"
	"github.com/Faultbox/bouncebox/internal/game/world"
	"github.com/Faultbox/bouncebox/internal/logger"
	"github.com/Faultbox/bouncebox/internal/tracker"
	"github.com/Faultbox/bouncebox/pkg/color"
)

// Overlay colors.
var (
	crosshairColor   = color.RGB(100, 100, 255)
	calibrationColor = color.RGB(255, 100, 100)
)

// calibrationCrossSize is the half length of the calibration target arms in pixels.
const calibrationCrossSize = 20

// maskAlpha is the opacity of the threshold mask drawn over the camera frame.
const maskAlpha = 0.8

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	shots    *screenshot.Capture

	camera *camera.OrbitCamera
	view   *camera.View

	world   *world.World
	pointer token.Pointer
	mouse   *token.Mouse   // Set when the cursor is the pointer
	tracked *token.Tracked // Set when a camera token is the pointer

	frameImage renderer.Image
	maskImage  renderer.Image

	screenshotPending bool
}

// New creates the window, renderer and world.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg: cfg,
		log: logger.Named("game"),
	}

	g.log.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	g.world, err = world.New(world.ConfigFrom(cfg, rand.New(rand.NewSource(time.Now().UnixNano()))))
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	width, height := g.window.Size()

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: color.RGB(0, 0, 0),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.shots = screenshot.New(cfg.Window.ScreenshotDir, "bouncebox")

	g.camera = camera.NewOrbitCamera(cfg.Camera.Distance)
	g.view = camera.NewView(g.camera, cfg.Camera.FOVDegrees, cfg.Camera.Near, cfg.Camera.Far, width, height)

	if err := g.initPointer(width, height); err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, err
	}

	g.audio = audio.New(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := g.audio.Init(); err != nil {
			g.log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		}
	}

	g.log.Info("game initialized successfully",
		zap.Int("spheres", len(g.world.Spheres())),
		zap.Bool("tracking", g.mouse == nil),
	)
	return g, nil
}

// initPointer selects the token tracker when a frames directory is configured
// and the mouse cursor otherwise.
func (g *Game) initPointer(width, height int) error {
	tc := g.cfg.Tracker
	if tc.FramesDir == "" {
		g.mouse = token.NewMouse()
		g.pointer = g.mouse
		return nil
	}

	frames, err := tracker.OpenFrames(tc.FramesDir, tc.FrameWidth, tc.FrameHeight, tc.Mirror)
	if err != nil {
		return fmt.Errorf("failed to open frames: %w", err)
	}
	t := tracker.New(tc.FrameWidth, tc.FrameHeight, tracker.Options{
		HMargin:     tc.HMargin,
		SVMargin:    tc.SVMargin,
		MinBlobArea: tc.MinBlobArea,
		MaxBlobArea: tc.MaxBlobArea,
		ErodeRadius: tc.ErodeRadius,
	})
	g.tracked = token.NewTracked(t, frames, width, height)
	g.pointer = g.tracked

	g.log.Info("token tracking enabled; hold the token over the pink cross and press any key, four times. Shift+C recalibrates",
		zap.String("frames", tc.FramesDir),
		zap.Int("count", frames.Len()),
	)
	return nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()
		if !g.running {
			break
		}

		// 2. Update game state
		g.update()

		// 3. Render
		g.render()
		if g.screenshotPending {
			g.screenshotPending = false
			g.saveScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %d FPS", g.cfg.Window.Title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.DeleteImage(&g.frameImage)
		g.renderer.DeleteImage(&g.maskImage)
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := g.window.Size()
			g.renderer.Resize(width, height)
			g.view.Resize(width, height)
			g.pointer.Resize(width, height)

		case input.EventKeyDown:
			g.do(controls.ForKey(rune(event.Key), event.Shift, g.pointer.Calibrating()))

		case input.EventMouseDown:
			if event.Button == input.ButtonLeft {
				g.moveMouse(event.MouseX, event.MouseY)
				g.do(controls.ForClick(g.pointer.Calibrating()))
			}

		case input.EventMouseMove:
			g.moveMouse(event.MouseX, event.MouseY)
			if g.input.RightDragging() {
				g.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseWheel:
			g.camera.HandleZoom(event.Wheel)
		}
	}
}

func (g *Game) moveMouse(x, y int) {
	if g.mouse == nil {
		return
	}
	sx, sy := g.window.PixelScale()
	g.mouse.Move(float32(x)*sx, float32(y)*sy)
}

func (g *Game) do(action controls.Action) {
	switch action {
	case controls.Quit:
		g.running = false
	case controls.Sample:
		g.pointer.Sample()
		if !g.pointer.Calibrating() {
			g.log.Info("calibration complete, aim with the token and press any key to push")
		}
	case controls.Recalibrate:
		g.pointer.Recalibrate()
		g.world.CancelTrigger()
	case controls.Trigger:
		g.world.Trigger(g.pointer.Position())
	case controls.Screenshot:
		g.screenshotPending = true
	}
}

// saveScreenshot reads back the frame just rendered, before it is swapped.
func (g *Game) saveScreenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	path, err := g.shots.SavePixels(pixels, width, height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// update advances the pointer and, once calibrated, the simulation.
func (g *Game) update() {
	if err := g.pointer.Update(); err != nil {
		g.log.Warn("pointer update failed", zap.Error(err))
	}
	g.uploadCameraImages()

	if g.pointer.Calibrating() {
		return
	}

	report := g.world.Update(g.view)
	g.audio.PlayBounce(report.WallHits)
	if report.Pushed {
		g.audio.PlayPush()
	}
}

// uploadCameraImages copies the latest camera frame and threshold mask to the GPU.
func (g *Game) uploadCameraImages() {
	if g.tracked == nil {
		return
	}
	if frame := g.tracked.Frame(); frame != nil {
		g.renderer.UploadImage(&g.frameImage, frame)
	}
	if mask := g.tracked.Mask(); mask != nil {
		g.renderer.UploadImage(&g.maskImage, mask)
	}
}

// render draws the current frame.
func (g *Game) render() {
	g.renderer.Begin(g.view.ViewProjection())

	// The camera frame fills the window behind everything else
	if g.tracked != nil {
		g.renderer.DrawImage(&g.frameImage, 1)
		if g.tracked.Mask() != nil {
			g.renderer.DrawImage(&g.maskImage, maskAlpha)
		}
	}

	if target, ok := g.pointer.CalibrationTarget(); ok {
		g.renderer.DrawCrosshair(target.X, target.Y, calibrationCrossSize, calibrationColor)
		return
	}

	g.world.Render(g.renderer)

	// Crosshair spans the whole screen
	width, height := g.view.Size()
	pos := g.pointer.Position()
	g.renderer.DrawCrosshair(pos.X, pos.Y, float32(max(width, height)), crosshairColor)
}
