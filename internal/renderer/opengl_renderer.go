package renderer

import (
	"AsylumOcean/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// OpenGLDevice issues the frame's state changes and draws to the current
// GL context. Errors are not checked per call in the steady-state loop.
type OpenGLDevice struct {
	Wireframe bool // draw polygon outlines only
	uploaded  []*MeshBuffers
}

// Init sets the global state the scene relies on: depth testing with LESS and
// straight alpha blending.
func (dev *OpenGLDevice) Init(width, height int32) {
	gl.Viewport(0, 0, width, height)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if dev.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	logger.Log.Info("OpenGL device initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
}

// UpdateViewport updates the OpenGL viewport to match the current framebuffer size
func (dev *OpenGLDevice) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (dev *OpenGLDevice) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (dev *OpenGLDevice) SetDepthFunc(fn DepthFunc) {
	switch fn {
	case DepthLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

func (dev *OpenGLDevice) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (dev *OpenGLDevice) Draw(buffers MeshBuffers) {
	gl.BindVertexArray(buffers.VAO)
	if buffers.Indexed {
		gl.DrawElements(gl.TRIANGLES, buffers.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, buffers.Count)
	}
	gl.BindVertexArray(0)
}

// Upload creates the vertex array and buffers for mesh. Attribute 0 is the
// position; attribute 1 the texture coordinate when the mesh has one.
func (dev *OpenGLDevice) Upload(mesh *Mesh) MeshBuffers {
	var buffers MeshBuffers
	data := mesh.Interleaved()

	gl.GenVertexArrays(1, &buffers.VAO)
	gl.BindVertexArray(buffers.VAO)

	gl.GenBuffers(1, &buffers.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffers.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	if mesh.Indices != nil {
		gl.GenBuffers(1, &buffers.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buffers.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
		buffers.Count = int32(len(mesh.Indices))
		buffers.Indexed = true
	} else {
		buffers.Count = int32(len(mesh.Vertices))
	}

	stride := int32(mesh.FloatsPerVertex() * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	if mesh.HasTexCoords {
		gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(1)
	}

	gl.BindVertexArray(0)
	dev.uploaded = append(dev.uploaded, &buffers)
	return buffers
}

// Cleanup releases every vertex array and buffer created by Upload.
func (dev *OpenGLDevice) Cleanup() {
	for _, b := range dev.uploaded {
		gl.DeleteVertexArrays(1, &b.VAO)
		gl.DeleteBuffers(1, &b.VBO)
		if b.EBO != 0 {
			gl.DeleteBuffers(1, &b.EBO)
		}
	}
	dev.uploaded = nil
	logger.Log.Info("GPU buffers released")
}
