package engine

import (
	"sort"

	"AsylumOcean/internal/config"
	"AsylumOcean/internal/input"
	"AsylumOcean/internal/logger"
	"AsylumOcean/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Platform is the window system as seen by the render loop.
type Platform interface {
	ShouldClose() bool
	SetShouldClose(bool)
	Time() float64
	// Sample returns the held keys and every event queued since the
	// previous call.
	Sample() input.Sample
	SwapBuffers()
	PollEvents()
}

// ReloadSource reports shaders whose files changed since the last call.
type ReloadSource interface {
	Pending() []string
}

// Viewer owns the per-frame state: camera, clock and the two passes.
type Viewer struct {
	Camera     *renderer.Camera
	Skybox     *renderer.Skybox
	Water      *renderer.Water
	ClearColor mgl32.Vec4

	device    renderer.Device
	clock     FrameClock
	reloaders map[string]func() error
}

func NewViewer(cfg config.Config, device renderer.Device, skybox *renderer.Skybox, water *renderer.Water) *Viewer {
	return &Viewer{
		Camera:     newCamera(cfg),
		Skybox:     skybox,
		Water:      water,
		ClearColor: mgl32.Vec4(cfg.Render.ClearColor),
		device:     device,
		reloaders:  make(map[string]func() error),
	}
}

func newCamera(cfg config.Config) *renderer.Camera {
	camera := renderer.NewDefaultCamera(cfg.Window.Width, cfg.Window.Height)
	camera.AspectRatio = cfg.Window.AspectRatio()
	camera.Position = mgl32.Vec3(cfg.Camera.Position)
	camera.Speed = cfg.Camera.Speed
	camera.Sensitivity = cfg.Camera.Sensitivity
	camera.Near = cfg.Camera.Near
	camera.Far = cfg.Camera.Far
	camera.SetFov(cfg.Camera.Fov)
	camera.SetOrientation(cfg.Camera.Yaw, cfg.Camera.Pitch)
	return camera
}

// OnReload registers the rebuild for the shader called name.
func (v *Viewer) OnReload(name string, rebuild func() error) {
	v.reloaders[name] = rebuild
}

// Frame advances the clock, applies input to the camera and draws the sky
// followed by the water. It reports whether a quit was requested.
func (v *Viewer) Frame(now float64, sample input.Sample) bool {
	elapsed, delta := v.clock.Tick(now)
	v.Camera.Apply(sample, float32(delta))

	v.device.Clear(v.ClearColor)

	view := v.Camera.GetViewMatrix()
	projection := v.Camera.GetProjectionMatrix()
	t := float32(elapsed)

	v.Skybox.Render(v.device, view, projection, t)
	v.Water.Render(v.device, view, projection, t, v.Camera.Position)

	return sample.Keys.Has(input.KeyQuit)
}

// Run drives frames until the platform is asked to close. reloads may be nil.
func (v *Viewer) Run(p Platform, reloads ReloadSource) {
	frames := 0
	for !p.ShouldClose() {
		if reloads != nil {
			v.reload(reloads.Pending())
		}
		if v.Frame(p.Time(), p.Sample()) {
			logger.Log.Info("Quit requested")
			p.SetShouldClose(true)
		}
		p.SwapBuffers()
		p.PollEvents()
		frames++
	}
	logger.Log.Info("Render loop finished", zap.Int("frames", frames))
}

func (v *Viewer) reload(names []string) {
	sort.Strings(names)
	for _, name := range names {
		rebuild, ok := v.reloaders[name]
		if !ok {
			continue
		}
		if err := rebuild(); err != nil {
			logger.Log.Error("Shader reload failed, keeping previous program",
				zap.String("shader", name), zap.Error(err))
			continue
		}
		logger.Log.Info("Shader reloaded", zap.String("shader", name))
	}
}
