// Package renderer draws the loaded mesh with OpenGL: a solid flat-shaded
// pass, an optional wireframe overlay, and an optional backface pass using
// the reversed-winding index buffer.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/meshforge/meshview/internal/engine/shader"
	"github.com/meshforge/meshview/internal/logger"
	"github.com/meshforge/meshview/internal/mesh"
	gomath "github.com/meshforge/meshview/pkg/math"
)

const vertexShaderSrc = `
	#version 410 core

	layout (location = 0) in vec3 aPos;

	uniform mat4 uViewProj;
	uniform mat4 uModel;

	out vec3 vWorldPos;

	void main() {
		vec4 world = uModel * vec4(aPos, 1.0);
		vWorldPos = world.xyz;
		gl_Position = uViewProj * world;
	}
`

// The soup carries no normals, so the solid pass derives a per-triangle
// normal from screen-space derivatives. uFlat skips the shading for the
// wireframe and backface passes.
const fragmentShaderSrc = `
	#version 410 core

	in vec3 vWorldPos;
	out vec4 FragColor;

	uniform vec3 uColor;
	uniform int uFlat;

	void main() {
		if (uFlat == 1) {
			FragColor = vec4(uColor, 1.0);
			return;
		}
		vec3 normal = normalize(cross(dFdx(vWorldPos), dFdy(vWorldPos)));
		float shade = abs(normal.z) * 0.6 + abs(normal.y) * 0.25 + 0.15;
		FragColor = vec4(uColor * shade, 1.0);
	}
`

// meshBuffers is one complete generation of GPU geometry.
type meshBuffers struct {
	vao      uint32
	vbo      uint32
	frontEBO uint32
	backEBO  uint32
	count    int32
}

func (b *meshBuffers) release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.frontEBO != 0 {
		gl.DeleteBuffers(1, &b.frontEBO)
	}
	if b.backEBO != 0 {
		gl.DeleteBuffers(1, &b.backEBO)
	}
	*b = meshBuffers{}
}

// Passes selects which draw passes run this frame.
type Passes struct {
	Wireframe bool
	Backfaces bool
}

// Renderer owns the shader program and the current mesh buffers. It must
// only be touched from the thread holding the GL context.
type Renderer struct {
	width  int
	height int

	program     uint32
	locViewProj int32
	locModel    int32
	locColor    int32
	locFlat     int32

	buffers meshBuffers
}

// New initializes OpenGL state and compiles the mesh shader. The GL
// context must already be current.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Viewport(0, 0, int32(width), int32(height))

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling mesh shader: %w", err)
	}
	r.program = program
	r.locViewProj = shader.MustGetUniform(program, "uViewProj")
	r.locModel = shader.MustGetUniform(program, "uModel")
	r.locColor = shader.MustGetUniform(program, "uColor")
	r.locFlat = shader.MustGetUniform(program, "uFlat")

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.buffers.release()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize updates the GL viewport to the new drawable size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Upload replaces the current geometry with a new soup. The new buffer set
// is fully built before the previous one is deleted, so no frame can ever
// observe a half-replaced set.
func (r *Renderer) Upload(s *mesh.Soup) {
	var b meshBuffers
	b.count = int32(len(s.Front))

	if b.count > 0 {
		gl.GenVertexArrays(1, &b.vao)
		gl.BindVertexArray(b.vao)

		gl.GenBuffers(1, &b.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(s.Positions)*4, unsafe.Pointer(&s.Positions[0]), gl.STATIC_DRAW)

		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
		gl.EnableVertexAttribArray(0)

		gl.GenBuffers(1, &b.frontEBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.frontEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Front)*4, unsafe.Pointer(&s.Front[0]), gl.STATIC_DRAW)

		gl.GenBuffers(1, &b.backEBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.backEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Back)*4, unsafe.Pointer(&s.Back[0]), gl.STATIC_DRAW)

		gl.BindVertexArray(0)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}

	old := r.buffers
	r.buffers = b
	old.release()

	logger.Debug("mesh uploaded",
		zap.Int("triangles", s.TriangleCount()),
		zap.Uint32("vao", b.vao),
	)
}

// Draw renders the mesh with the given matrices and pass selection.
func (r *Renderer) Draw(viewProj, model gomath.Mat4, passes Passes) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.buffers.count == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])

	gl.BindVertexArray(r.buffers.vao)

	// solid pass, pushed back slightly so the wireframe wins the depth test
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.buffers.frontEBO)
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1.0, 1.0)
	gl.Uniform3f(r.locColor, 0.72, 0.72, 0.75)
	gl.Uniform1i(r.locFlat, 0)
	gl.DrawElements(gl.TRIANGLES, r.buffers.count, gl.UNSIGNED_INT, nil)
	gl.Disable(gl.POLYGON_OFFSET_FILL)

	if passes.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.Uniform3f(r.locColor, 0.05, 0.05, 0.05)
		gl.Uniform1i(r.locFlat, 1)
		gl.DrawElements(gl.TRIANGLES, r.buffers.count, gl.UNSIGNED_INT, nil)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if passes.Backfaces {
		// reversed winding turns former backfaces into front faces, so
		// the regular cull setting shows exactly the flipped triangles
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.buffers.backEBO)
		gl.Uniform3f(r.locColor, 0.85, 0.1, 0.1)
		gl.Uniform1i(r.locFlat, 1)
		gl.DrawElements(gl.TRIANGLES, r.buffers.count, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
}

// ReadPixels copies the current color buffer into a host byte slice, RGBA,
// rows bottom-up. Call it before the buffer swap so the capture matches
// the frame just drawn.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, r.width, r.height
}
