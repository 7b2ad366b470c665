package engine

import (
	"errors"

	"AsylumOcean/internal/config"
	"AsylumOcean/internal/logger"
	"AsylumOcean/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	skyboxShaderName = "skybox"
	waterShaderName  = "water"
)

// app holds the GPU resources created at startup and released at exit.
type app struct {
	device   *renderer.OpenGLDevice
	textures *renderer.TextureManager
	shaders  []*renderer.Shader
	watcher  *ShaderWatcher
	viewer   *Viewer
}

// Run opens the window, builds the scene and renders until the window is
// closed or escape is pressed. The caller must hold the main OS thread.
// Errors are fatal: an *InitError, or a shader error under the strict policy.
func Run(cfg config.Config) error {
	renderer.Debug = cfg.Render.Debug

	window, err := OpenWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Close()

	a, err := setup(cfg, window)
	if err != nil {
		return err
	}
	defer a.teardown()

	var reloads ReloadSource
	if a.watcher != nil {
		reloads = a.watcher
	}
	a.viewer.Run(window, reloads)
	return nil
}

func setup(cfg config.Config, window *Window) (*app, error) {
	var cleanup renderer.Unwind
	defer cleanup.Unwind()

	a := &app{
		device:   &renderer.OpenGLDevice{Wireframe: cfg.Render.Wireframe},
		textures: renderer.NewTextureManager(),
	}

	width, height := window.FramebufferSize()
	a.device.Init(width, height)
	window.OnResize(a.device.UpdateViewport)

	strict := cfg.Render.ShaderPolicy == config.PolicyStrict
	assets := cfg.Assets

	skyShader, err := loadShader(skyboxShaderName, assets.SkyboxVertexShader, assets.SkyboxFragmentShader, strict)
	cleanup.Add(skyShader.Delete)
	if err != nil {
		return nil, err
	}
	waterShader, err := loadShader(waterShaderName, assets.WaterVertexShader, assets.WaterFragmentShader, strict)
	cleanup.Add(waterShader.Delete)
	if err != nil {
		return nil, err
	}
	a.shaders = []*renderer.Shader{skyShader, waterShader}

	cleanup.Add(a.textures.Clear)
	a.textures.Prefetch(
		[]string{assets.WaterColor, assets.WaterNormal, assets.WaterDisplacement, assets.WaterSpecular},
		[]string{assets.SkyHDR})
	sky := a.textures.LoadHDR(assets.SkyHDR)
	water := [renderer.WaterTextureCount]uint32{
		renderer.UnitWaterColor:        a.textures.LoadTexture(assets.WaterColor),
		renderer.UnitWaterNormal:       a.textures.LoadTexture(assets.WaterNormal),
		renderer.UnitWaterDisplacement: a.textures.LoadTexture(assets.WaterDisplacement),
		renderer.UnitWaterSpecular:     a.textures.LoadTexture(assets.WaterSpecular),
		renderer.UnitEnvironment:       sky,
	}
	a.textures.LogStats()

	waterMesh, err := renderer.GenerateWaterMeshRepeat(cfg.Water.Resolution, cfg.Water.Size, cfg.Water.TextureRepeat)
	if err != nil {
		return nil, err
	}
	cleanup.Add(a.device.Cleanup)
	skyMesh := renderer.GenerateSkyboxCube()
	logger.Log.Info("Meshes generated",
		zap.Int("waterVertices", waterMesh.VertexCount()),
		zap.Int("waterTriangles", waterMesh.TriangleCount()),
		zap.Int("skyboxVertices", skyMesh.VertexCount()))

	skyPass := &renderer.Skybox{
		Program: skyShader,
		Buffers: a.device.Upload(skyMesh),
		Texture: sky,
		Params: renderer.SkyboxParams{
			Darkness: cfg.Sky.Darkness,
			FogColor: mgl32.Vec3(cfg.Sky.FogColor),
		},
	}
	waterPass := &renderer.Water{
		Program:  waterShader,
		Buffers:  a.device.Upload(waterMesh),
		Textures: water,
		Params:   waterParams(cfg.Water),
	}
	skyPass.BindSamplers()
	waterPass.BindSamplers()

	a.viewer = NewViewer(cfg, a.device, skyPass, waterPass)
	a.viewer.OnReload(skyboxShaderName, rebuildFunc(skyShader, skyPass.BindSamplers, strict))
	a.viewer.OnReload(waterShaderName, rebuildFunc(waterShader, waterPass.BindSamplers, strict))

	if cfg.Render.HotReload {
		a.watcher, err = NewShaderWatcher(map[string][]string{
			skyboxShaderName: {assets.SkyboxVertexShader, assets.SkyboxFragmentShader},
			waterShaderName:  {assets.WaterVertexShader, assets.WaterFragmentShader},
		})
		if err != nil {
			// reloading is a convenience; run without it
			logger.Log.Warn("Shader hot reload disabled", zap.Error(err))
			a.watcher = nil
		}
	}

	cleanup.Discard()
	return a, nil
}

// loadShader applies the shader policy: strict returns the error, lenient
// logs it and keeps the unusable program so the loop still runs.
func loadShader(name, vertexPath, fragmentPath string, strict bool) (*renderer.Shader, error) {
	shader, err := renderer.LoadShaderFromFiles(name, vertexPath, fragmentPath, strict)
	if err == nil {
		return shader, nil
	}
	if strict {
		return shader, err
	}
	for _, e := range flatten(err) {
		logger.Log.Error("Shader build failed", zap.String("shader", name), zap.Error(e))
	}
	return shader, nil
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func rebuildFunc(shader *renderer.Shader, bindSamplers func(), strict bool) func() error {
	return func() error {
		if err := shader.Reload(strict); err != nil {
			return err
		}
		bindSamplers()
		return nil
	}
}

func waterParams(w config.Water) renderer.WaterParams {
	return renderer.WaterParams{
		LightDir:           mgl32.Vec3(w.LightDir),
		LightColor:         mgl32.Vec3(w.LightColor),
		Opacity:            w.Opacity,
		ReflectionStrength: w.ReflectionStrength,
		RefractionStrength: w.RefractionStrength,
		Tint:               mgl32.Vec3(w.Tint),
		FoamThreshold:      w.FoamThreshold,
		FogColor:           mgl32.Vec3(w.FogColor),
		FogDensity:         w.FogDensity,
		Darkness:           w.Darkness,
	}
}

// releaseTextures drops the references held by the passes. The HDR map is
// held twice, by the skybox and by the water's environment unit, and is freed
// by the second release.
func (a *app) releaseTextures() {
	a.textures.ReleaseTexture(a.viewer.Skybox.Texture)
	for _, texture := range a.viewer.Water.Textures {
		a.textures.ReleaseTexture(texture)
	}
	if stats := a.textures.GetStats(); stats.ActiveTextures > 0 {
		logger.Log.Warn("Textures still referenced at exit", zap.Int("count", stats.ActiveTextures))
	}
}

func (a *app) teardown() {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	a.device.Cleanup()
	a.releaseTextures()
	a.textures.Clear()
	for _, shader := range a.shaders {
		shader.Delete()
	}
	if err := errors.Join(errs...); err != nil {
		logger.Log.Warn("Teardown", zap.Error(err))
	}
	logger.Log.Info("Resources released")
}
