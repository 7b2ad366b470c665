package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SkyboxTextureUnit is where the skybox program samples the environment map.
const SkyboxTextureUnit = 0

type SkyboxParams struct {
	Darkness float32
	FogColor mgl32.Vec3
}

// Skybox draws the HDR environment on a cube that follows the camera. The
// vertex shader pins it to the far plane, so it is drawn with LEQUAL.
type Skybox struct {
	Program Program
	Buffers MeshBuffers
	Texture uint32
	Params  SkyboxParams
}

// BindSamplers assigns the sampler uniform to its texture unit. Sampler
// bindings are program state, so this runs once after each (re)link.
func (s *Skybox) BindSamplers() {
	s.Program.Use()
	s.Program.SetInt("skyboxHDR", SkyboxTextureUnit)
}

// Render draws the skybox and leaves the depth test back on LESS.
func (s *Skybox) Render(dev Device, view, projection mgl32.Mat4, time float32) {
	dev.SetDepthFunc(DepthLessEqual)

	s.Program.Use()
	s.Program.SetMat4("view", SkyboxView(view))
	s.Program.SetMat4("projection", projection)
	s.Program.SetFloat("time", time)
	s.Program.SetFloat("darknessIntensity", s.Params.Darkness)
	s.Program.SetVec3("fogColor", s.Params.FogColor)

	dev.BindTexture(SkyboxTextureUnit, s.Texture)
	dev.Draw(s.Buffers)

	dev.SetDepthFunc(DepthLess)
}

// SkyboxView keeps only the rotation of view so the sky appears infinitely far.
func SkyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}
