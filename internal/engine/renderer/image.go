package renderer

import (
	"image"
	"unsafe"

	"github.com/anthonynsimon/bild/clone"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/bouncebox/pkg/math"
)

// Image is a GPU texture holding a camera frame or mask.
// The zero value is empty; UploadImage allocates it.
type Image struct {
	texture uint32
	width   int
	height  int
}

// UploadImage copies src into img, reallocating the texture when the size changes.
func (r *Renderer) UploadImage(img *Image, src image.Image) {
	rgba := toRGBA(src)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	if img.texture == 0 {
		gl.GenTextures(1, &img.texture)
		gl.BindTexture(gl.TEXTURE_2D, img.texture)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, img.texture)
	}

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if w != img.width || h != img.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
		img.width, img.height = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// DrawImage stretches img over the whole window at the given opacity.
// It draws nothing before the first upload.
func (r *Renderer) DrawImage(img *Image, alpha float32) {
	if img.texture == 0 {
		return
	}
	w, h := float32(r.config.Width), float32(r.config.Height)
	quad := imageQuad(w, h)

	gl.Disable(gl.DEPTH_TEST)

	r.imageProgram.Use()
	r.imageProgram.SetMat4("uProjection", math.Ortho(0, w, h, 0, -1, 1))
	r.imageProgram.SetInt("uTexture", 0)
	r.imageProgram.SetFloat("uAlpha", alpha)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, img.texture)

	gl.BindVertexArray(r.imageVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.imageVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, unsafe.Pointer(&quad[0]))
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Enable(gl.DEPTH_TEST)
}

// DeleteImage releases the texture behind img.
func (r *Renderer) DeleteImage(img *Image) {
	if img.texture != 0 {
		gl.DeleteTextures(1, &img.texture)
	}
	*img = Image{}
}

// createImageQuad sets up a four-vertex buffer of position (3 floats) and
// texture coordinate (2 floats).
func (r *Renderer) createImageQuad() {
	gl.GenVertexArrays(1, &r.imageVAO)
	gl.BindVertexArray(r.imageVAO)

	gl.GenBuffers(1, &r.imageVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.imageVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 4*5*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 5*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// imageQuad returns a triangle strip covering (0,0)-(w,h) in pixels.
// Texture row 0 is the image's top row, which lands at y=0.
func imageQuad(w, h float32) [20]float32 {
	return [20]float32{
		0, 0, 0, 0, 0,
		w, 0, 0, 1, 0,
		0, h, 0, 0, 1,
		w, h, 0, 1, 1,
	}
}

// toRGBA returns src as tightly packed RGBA with its origin at (0,0).
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	rgba := clone.AsRGBA(src)
	rgba.Rect = rgba.Rect.Sub(rgba.Rect.Min)
	return rgba
}
