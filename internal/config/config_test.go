package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int32(1920), cfg.Window.Width)
	assert.Equal(t, int32(1080), cfg.Window.Height)
	assert.Equal(t, 50, cfg.Water.Resolution)
	assert.Equal(t, float32(50), cfg.Water.Size)
	assert.Equal(t, PolicyLenient, cfg.Render.ShaderPolicy)
	assert.InDelta(t, 16.0/9.0, cfg.Window.AspectRatio(), 1e-6)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, found, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocean.toml")
	data := `
[water]
resolution = 10
size = 20.0

[camera]
position = [1.0, 3.0, 7.0]

[render]
shader_policy = "strict"
hot_reload = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, found, err := Load(path)
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, 10, cfg.Water.Resolution)
	assert.Equal(t, float32(20), cfg.Water.Size)
	assert.Equal(t, [3]float32{1, 3, 7}, cfg.Camera.Position)
	assert.Equal(t, PolicyStrict, cfg.Render.ShaderPolicy)
	assert.True(t, cfg.Render.HotReload)

	// untouched keys keep their defaults
	assert.Equal(t, float32(8), cfg.Water.TextureRepeat)
	assert.Equal(t, float32(-90), cfg.Camera.Yaw)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[water]\nresolutoin = 4\n"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"zero resolution": "[water]\nresolution = 0\n",
		"negative size":   "[water]\nsize = -1.0\n",
		"nan size":        "[water]\nsize = nan\n",
		"infinite size":   "[water]\nsize = inf\n",
		"near past far":   "[camera]\nnear = 10.0\nfar = 1.0\n",
		"bad policy":      "[render]\nshader_policy = \"yolo\"\n",
		"empty window":    "[window]\nwidth = 0\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse([]byte(data))
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocean.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o644))

	cfg, found, err := Load(path)
	assert.Error(t, err)
	assert.True(t, found)
	assert.Equal(t, Default(), cfg)
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, found, err := Load(filepath.Join("..", "..", "ocean.example.toml"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, Default(), cfg)
}

func TestParseWireframeIsSeparateFromDebug(t *testing.T) {
	cfg, err := Parse([]byte("[render]\nwireframe = true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Render.Wireframe)
	assert.False(t, cfg.Render.Debug)
	assert.False(t, Default().Render.Wireframe)
}
