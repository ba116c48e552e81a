// Package overlay renders the on-screen text block: controls help, mesh
// statistics, and the RPC address. Text is rasterized on the CPU with a
// bitmap font and drawn as a single alpha-blended textured quad.
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/meshforge/meshview/internal/engine/shader"
)

const (
	marginX = 12
	marginY = 12
	padding = 6
)

const vertexShaderSrc = `
	#version 410 core

	layout (location = 0) in vec2 aPos;
	layout (location = 1) in vec2 aUV;

	uniform vec2 uScreen;

	out vec2 vUV;

	void main() {
		// pixel coordinates, origin top-left, to NDC
		vec2 ndc = vec2(aPos.x / uScreen.x * 2.0 - 1.0, 1.0 - aPos.y / uScreen.y * 2.0);
		gl_Position = vec4(ndc, 0.0, 1.0);
		vUV = aUV;
	}
`

const fragmentShaderSrc = `
	#version 410 core

	in vec2 vUV;
	out vec4 FragColor;

	uniform sampler2D uText;

	void main() {
		FragColor = texture(uText, vUV);
	}
`

// Overlay owns the text texture and quad. GL-context thread only.
type Overlay struct {
	program   uint32
	locScreen int32
	vao       uint32
	vbo       uint32
	texture   uint32

	screenW int
	screenH int
	texW    int
	texH    int

	lines []string
	dirty bool
}

// New compiles the overlay shader. The GL context must be current.
func New(screenW, screenH int) (*Overlay, error) {
	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, err
	}

	o := &Overlay{
		program:   program,
		locScreen: shader.MustGetUniform(program, "uScreen"),
		screenW:   screenW,
		screenH:   screenH,
	}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &o.texture)

	return o, nil
}

// Close releases GPU resources.
func (o *Overlay) Close() {
	if o.texture != 0 {
		gl.DeleteTextures(1, &o.texture)
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.program != 0 {
		gl.DeleteProgram(o.program)
	}
}

// SetLines replaces the overlay text. The texture is rebuilt lazily on the
// next Draw, and only when the text actually changed.
func (o *Overlay) SetLines(lines []string) {
	if equalLines(o.lines, lines) {
		return
	}
	o.lines = append(o.lines[:0], lines...)
	o.dirty = true
}

// Resize records the new drawable size.
func (o *Overlay) Resize(screenW, screenH int) {
	o.screenW = screenW
	o.screenH = screenH
}

// Draw composites the overlay onto the current color target.
func (o *Overlay) Draw() {
	if len(o.lines) == 0 {
		return
	}
	if o.dirty {
		o.rebuild()
		o.dirty = false
	}
	if o.texW == 0 || o.texH == 0 {
		return
	}

	gl.UseProgram(o.program)
	gl.Uniform2f(o.locScreen, float32(o.screenW), float32(o.screenH))

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// rebuild rasterizes the text block and uploads texture and quad geometry.
func (o *Overlay) rebuild() {
	img := rasterize(o.lines)
	o.texW = img.Rect.Dx()
	o.texH = img.Rect.Dy()
	if o.texW == 0 || o.texH == 0 {
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(o.texW), int32(o.texH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	x0 := float32(marginX)
	y0 := float32(marginY)
	x1 := x0 + float32(o.texW)
	y1 := y0 + float32(o.texH)

	// two triangles, pos.xy + uv
	quad := []float32{
		x0, y0, 0, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x1, y0, 1, 0,
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// rasterize draws the lines in a 7x13 bitmap font over a translucent
// backdrop.
func rasterize(lines []string) *image.RGBA {
	face := basicfont.Face7x13

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	w := maxLen*face.Advance + 2*padding
	h := len(lines)*face.Height + 2*padding

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 140}), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(padding, padding+face.Ascent+i*face.Height)
		d.DrawString(l)
	}
	return img
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
