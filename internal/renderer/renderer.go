package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Debug turns on diagnostics that are too noisy for normal runs, such as
// warnings for uniforms the active program does not declare.
var Debug bool = false

type DepthFunc uint8

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

func (d DepthFunc) String() string {
	if d == DepthLessEqual {
		return "LEQUAL"
	}
	return "LESS"
}

// MeshBuffers are the GPU-side objects of an uploaded Mesh.
type MeshBuffers struct {
	VAO     uint32
	VBO     uint32
	EBO     uint32
	Count   int32 // vertices for array draws, indices for indexed draws
	Indexed bool
}

// Device is the slice of GPU state the frame needs. OpenGLDevice is the real
// one; tests substitute a recorder.
type Device interface {
	Clear(color mgl32.Vec4)
	SetDepthFunc(fn DepthFunc)
	BindTexture(unit uint32, texture uint32)
	Draw(buffers MeshBuffers)
}

// Program is a linked shader program with a typed uniform interface. Setting
// a uniform the program does not declare is a silent no-op.
type Program interface {
	Use()
	SetFloat(name string, value float32)
	SetInt(name string, value int32)
	SetVec3(name string, value mgl32.Vec3)
	SetMat4(name string, value mgl32.Mat4)
}
