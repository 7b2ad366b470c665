// Package config holds every tunable of the ocean viewer. The defaults
// reproduce the fixed scene exactly; an optional TOML file may override any
// subset of them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the file looked up in the working directory at startup.
const DefaultPath = "ocean.toml"

// ShaderPolicy decides what happens when a shader program fails to build.
type ShaderPolicy string

const (
	// PolicyLenient logs the failure and keeps running with an unusable program.
	PolicyLenient ShaderPolicy = "lenient"
	// PolicyStrict aborts startup on the first shader error.
	PolicyStrict ShaderPolicy = "strict"
)

type Window struct {
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Camera struct {
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
	Fov         float32    `toml:"fov"`
	Sensitivity float32    `toml:"sensitivity"`
	Speed       float32    `toml:"speed"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
}

// Water covers both the grid geometry and the per-frame water uniforms.
type Water struct {
	Resolution    int     `toml:"resolution"`
	Size          float32 `toml:"size"`
	TextureRepeat float32 `toml:"texture_repeat"`

	LightDir           [3]float32 `toml:"light_dir"`
	LightColor         [3]float32 `toml:"light_color"`
	Opacity            float32    `toml:"opacity"`
	ReflectionStrength float32    `toml:"reflection_strength"`
	RefractionStrength float32    `toml:"refraction_strength"`
	Tint               [3]float32 `toml:"tint"`
	FoamThreshold      float32    `toml:"foam_threshold"`
	FogColor           [3]float32 `toml:"fog_color"`
	FogDensity         float32    `toml:"fog_density"`
	Darkness           float32    `toml:"darkness"`
}

type Sky struct {
	Darkness float32    `toml:"darkness"`
	FogColor [3]float32 `toml:"fog_color"`
}

type Assets struct {
	WaterVertexShader    string `toml:"water_vertex_shader"`
	WaterFragmentShader  string `toml:"water_fragment_shader"`
	SkyboxVertexShader   string `toml:"skybox_vertex_shader"`
	SkyboxFragmentShader string `toml:"skybox_fragment_shader"`

	WaterColor        string `toml:"water_color"`
	WaterNormal       string `toml:"water_normal"`
	WaterDisplacement string `toml:"water_displacement"`
	WaterSpecular     string `toml:"water_specular"`
	SkyHDR            string `toml:"sky_hdr"`
}

type Render struct {
	ClearColor   [4]float32   `toml:"clear_color"`
	ShaderPolicy ShaderPolicy `toml:"shader_policy"`
	Debug        bool         `toml:"debug"`
	Wireframe    bool         `toml:"wireframe"`
	HotReload    bool         `toml:"hot_reload"`
}

type Config struct {
	Window Window `toml:"window"`
	Camera Camera `toml:"camera"`
	Water  Water  `toml:"water"`
	Sky    Sky    `toml:"sky"`
	Assets Assets `toml:"assets"`
	Render Render `toml:"render"`
}

// Default returns the fixed scene.
func Default() Config {
	return Config{
		Window: Window{
			Width:  1920,
			Height: 1080,
			Title:  "Asylum Ocean - Horror Wave Simulation",
			VSync:  true,
		},
		Camera: Camera{
			Position:    [3]float32{0, 2, 5},
			Yaw:         -90,
			Pitch:       -10,
			Fov:         45,
			Sensitivity: 0.1,
			Speed:       5,
			Near:        0.1,
			Far:         1000,
		},
		Water: Water{
			Resolution:    50,
			Size:          50,
			TextureRepeat: 8,

			LightDir:           [3]float32{0.3, -0.8, 0.5},
			LightColor:         [3]float32{1.2, 1.3, 1.4},
			Opacity:            0.85,
			ReflectionStrength: 0.6,
			RefractionStrength: 0.4,
			Tint:               [3]float32{0.1, 0.4, 0.3},
			FoamThreshold:      0.5,
			FogColor:           [3]float32{0.2, 0.3, 0.25},
			FogDensity:         0.005,
			Darkness:           1,
		},
		Sky: Sky{
			Darkness: 1,
			FogColor: [3]float32{0.3, 0.35, 0.32},
		},
		Assets: Assets{
			WaterVertexShader:    "water_vertex.glsl",
			WaterFragmentShader:  "water_fragment.glsl",
			SkyboxVertexShader:   "skybox_vertex.glsl",
			SkyboxFragmentShader: "skybox_fragment.glsl",

			WaterColor:        "resources/Water_001_COLOR.jpg",
			WaterNormal:       "resources/Water_001_NORM.jpg",
			WaterDisplacement: "resources/Water_001_DISP.png",
			WaterSpecular:     "resources/Water_001_SPEC.jpg",
			SkyHDR:            "resources/sky.hdr",
		},
		Render: Render{
			ClearColor:   [4]float32{0.05, 0.05, 0.1, 1},
			ShaderPolicy: PolicyLenient,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned and found reports false.
func Load(path string) (cfg Config, found bool, err error) {
	cfg = Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("read config %s: %w", path, err)
	}

	parsed, err := Parse(data)
	if err != nil {
		return cfg, true, fmt.Errorf("config %s: %w", path, err)
	}
	return parsed, true, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys
// are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Water.Resolution < 1 {
		errs = append(errs, fmt.Errorf("water resolution must be at least 1, got %d", c.Water.Resolution))
	}
	if !(c.Water.Size > 0) || math.IsInf(float64(c.Water.Size), 0) {
		errs = append(errs, fmt.Errorf("water size must be positive, got %g", c.Water.Size))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	switch c.Render.ShaderPolicy {
	case PolicyLenient, PolicyStrict:
	default:
		errs = append(errs, fmt.Errorf("unknown shader policy %q", c.Render.ShaderPolicy))
	}
	return errors.Join(errs...)
}

// AspectRatio is the fixed projection aspect derived from the window size.
func (w Window) AspectRatio() float32 {
	return float32(w.Width) / float32(w.Height)
}
