// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bouncebox/internal/engine/mesh"
	"github.com/Faultbox/bouncebox/internal/engine/shader"
	"github.com/Faultbox/bouncebox/internal/logger"
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background color.Color
}

// lightDir is the directional light used to shade spheres.
var lightDir = math.Vec3{X: 200, Y: 400}.Normalize()

// Renderer draws the box grids, spheres, camera images and overlay with OpenGL.
// It must be created after the OpenGL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	viewProj math.Mat4

	colorProgram  *shader.Program
	sphereProgram *shader.Program
	imageProgram  *shader.Program

	// Streamed per-vertex colored geometry
	streamVAO uint32
	streamVBO uint32

	// Full-window textured quad
	imageVAO uint32
	imageVBO uint32

	// Unit sphere
	sphereVAO     uint32
	sphereVBO     uint32
	sphereEBO     uint32
	sphereIndices int32
}

// New creates a new renderer.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		viewProj: math.Identity(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.colorProgram, err = shader.New("color", colorVertexShader, colorFragmentShader); err != nil {
		return nil, err
	}
	if r.sphereProgram, err = shader.New("sphere", sphereVertexShader, sphereFragmentShader); err != nil {
		r.colorProgram.Delete()
		return nil, err
	}
	if r.imageProgram, err = shader.New("image", imageVertexShader, imageFragmentShader); err != nil {
		r.colorProgram.Delete()
		r.sphereProgram.Delete()
		return nil, err
	}

	r.createStream()
	r.createImageQuad()
	r.createSphere(mesh.NewUVSphere(16, 24))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	gl.DeleteVertexArrays(1, &r.streamVAO)
	gl.DeleteBuffers(1, &r.streamVBO)
	gl.DeleteVertexArrays(1, &r.imageVAO)
	gl.DeleteBuffers(1, &r.imageVBO)
	gl.DeleteVertexArrays(1, &r.sphereVAO)
	gl.DeleteBuffers(1, &r.sphereVBO)
	gl.DeleteBuffers(1, &r.sphereEBO)
	r.colorProgram.Delete()
	r.sphereProgram.Delete()
	r.imageProgram.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame and sets the view-projection matrix for 3D draws.
func (r *Renderer) Begin(viewProj math.Mat4) {
	r.viewProj = viewProj
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetDepthTest toggles depth testing for subsequent draws.
func (r *Renderer) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// DrawStrip draws vertices as a filled triangle strip.
func (r *Renderer) DrawStrip(model math.Mat4, vertices []mesh.Vertex) {
	r.drawColored(r.viewProj.Mul(model), gl.TRIANGLE_STRIP, vertices)
}

// DrawWireframe draws the triangle edges of a strip.
func (r *Renderer) DrawWireframe(model math.Mat4, vertices []mesh.Vertex) {
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	r.drawColored(r.viewProj.Mul(model), gl.TRIANGLE_STRIP, vertices)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// DrawSphere draws a lit solid sphere.
func (r *Renderer) DrawSphere(model math.Mat4, center math.Vec3, radius float32, c color.Color) {
	m := model.Mul(math.Translate(center.X, center.Y, center.Z)).Mul(math.Scale(radius, radius, radius))

	r.sphereProgram.Use()
	r.sphereProgram.SetMat4("uMVP", r.viewProj.Mul(m))
	r.sphereProgram.SetMat4("uModel", m)
	r.sphereProgram.SetColor("uColor", c)
	r.sphereProgram.SetVec3("uLightDir", lightDir)

	gl.BindVertexArray(r.sphereVAO)
	gl.DrawElements(gl.TRIANGLES, r.sphereIndices, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// DrawCrosshair draws a screen-space cross centered on a pixel position.
func (r *Renderer) DrawCrosshair(x, y, size float32, c color.Color) {
	lines := []mesh.Vertex{
		{Position: math.Vec3{X: x - size, Y: y}, Color: c},
		{Position: math.Vec3{X: x + size, Y: y}, Color: c},
		{Position: math.Vec3{X: x, Y: y - size}, Color: c},
		{Position: math.Vec3{X: x, Y: y + size}, Color: c},
	}
	w, h := float32(r.config.Width), float32(r.config.Height)

	gl.Disable(gl.DEPTH_TEST)
	r.drawColored(math.Ortho(0, w, h, 0, -1, 1), gl.LINES, lines)
	gl.Enable(gl.DEPTH_TEST)
}

// ReadPixels reads back the current frame as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func (r *Renderer) drawColored(mvp math.Mat4, mode uint32, vertices []mesh.Vertex) {
	if len(vertices) == 0 {
		return
	}

	r.colorProgram.Use()
	r.colorProgram.SetMat4("uMVP", mvp)

	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	size := len(vertices) * int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(vertices)))
	gl.BindVertexArray(0)
}

// createStream sets up a buffer whose layout matches mesh.Vertex:
// three position floats followed by four color floats.
func (r *Renderer) createStream() {
	stride := int32(unsafe.Sizeof(mesh.Vertex{}))

	gl.GenVertexArrays(1, &r.streamVAO)
	gl.BindVertexArray(r.streamVAO)

	gl.GenBuffers(1, &r.streamVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// createSphere uploads the unit sphere; positions double as normals.
func (r *Renderer) createSphere(s mesh.Sphere) {
	gl.GenVertexArrays(1, &r.sphereVAO)
	gl.BindVertexArray(r.sphereVAO)

	gl.GenBuffers(1, &r.sphereVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sphereVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(s.Positions)*3*4, unsafe.Pointer(&s.Positions[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.sphereEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.sphereEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Indices)*4, unsafe.Pointer(&s.Indices[0]), gl.STATIC_DRAW)
	r.sphereIndices = int32(len(s.Indices))

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	r.log.Debug("sphere mesh created",
		zap.Int("vertices", len(s.Positions)),
		zap.Int32("indices", r.sphereIndices),
	)
}
