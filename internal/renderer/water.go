package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Texture units of the water program.
const (
	UnitWaterColor uint32 = iota
	UnitWaterNormal
	UnitWaterDisplacement
	UnitWaterSpecular
	UnitEnvironment
	WaterTextureCount
)

var waterSamplers = [WaterTextureCount]string{
	UnitWaterColor:        "waterColor",
	UnitWaterNormal:       "waterNormal",
	UnitWaterDisplacement: "waterDisp",
	UnitWaterSpecular:     "waterSpec",
	UnitEnvironment:       "skyboxHDR",
}

// WaterParams are the material, lighting and fog values fed to the water
// program every frame.
type WaterParams struct {
	LightDir           mgl32.Vec3
	LightColor         mgl32.Vec3
	Opacity            float32
	ReflectionStrength float32
	RefractionStrength float32
	Tint               mgl32.Vec3
	FoamThreshold      float32
	FogColor           mgl32.Vec3
	FogDensity         float32
	Darkness           float32
}

type Water struct {
	Program  Program
	Buffers  MeshBuffers
	Textures [WaterTextureCount]uint32 // indexed by texture unit
	Params   WaterParams
}

func (w *Water) BindSamplers() {
	w.Program.Use()
	for unit, name := range waterSamplers {
		w.Program.SetInt(name, int32(unit))
	}
}

// Render draws the water grid. time animates the waves; viewPos feeds the
// specular and fog terms.
func (w *Water) Render(dev Device, view, projection mgl32.Mat4, time float32, viewPos mgl32.Vec3) {
	p := w.Program
	p.Use()
	p.SetMat4("model", mgl32.Ident4())
	p.SetMat4("view", view)
	p.SetMat4("projection", projection)
	p.SetFloat("time", time)
	p.SetVec3("viewPos", viewPos)

	p.SetVec3("lightDir", w.Params.LightDir)
	p.SetVec3("lightColor", w.Params.LightColor)

	p.SetFloat("waterOpacity", w.Params.Opacity)
	p.SetFloat("reflectionStrength", w.Params.ReflectionStrength)
	p.SetFloat("refractionStrength", w.Params.RefractionStrength)
	p.SetVec3("waterTint", w.Params.Tint)
	p.SetFloat("foamThreshold", w.Params.FoamThreshold)

	p.SetVec3("fogColor", w.Params.FogColor)
	p.SetFloat("fogDensity", w.Params.FogDensity)
	p.SetFloat("darknessIntensity", w.Params.Darkness)

	for unit, texture := range w.Textures {
		dev.BindTexture(uint32(unit), texture)
	}
	dev.Draw(w.Buffers)
}
