package renderer

import (
	"AsylumOcean/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// UniformCache caches uniform locations to avoid repeated gl.GetUniformLocation calls.
// Names the program does not declare resolve to -1 and every write to them is skipped.
type UniformCache struct {
	locations map[string]int32
	warned    map[string]bool
	program   uint32
}

// NewUniformCache creates a new uniform cache for a shader program
func NewUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		locations: make(map[string]int32),
		warned:    make(map[string]bool),
		program:   program,
	}
}

// GetLocation returns the cached uniform location or fetches and caches it
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}

	loc := gl.GetUniformLocation(uc.program, gl.Str(name+"\x00"))
	uc.locations[name] = loc
	return loc
}

// lookup returns the location and whether it is writable.
func (uc *UniformCache) lookup(name string) (int32, bool) {
	loc := uc.GetLocation(name)
	if loc != -1 {
		return loc, true
	}
	if Debug && !uc.warned[name] {
		uc.warned[name] = true
		logger.Log.Warn("Uniform not found in program",
			zap.Uint32("program", uc.program),
			zap.String("uniform", name))
	}
	return loc, false
}

func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc, ok := uc.lookup(name); ok {
		gl.Uniform1f(loc, value)
	}
}

func (uc *UniformCache) SetVec3(name string, value mgl32.Vec3) {
	if loc, ok := uc.lookup(name); ok {
		gl.Uniform3f(loc, value.X(), value.Y(), value.Z())
	}
}

func (uc *UniformCache) SetInt(name string, value int32) {
	if loc, ok := uc.lookup(name); ok {
		gl.Uniform1i(loc, value)
	}
}

func (uc *UniformCache) SetMat4(name string, value mgl32.Mat4) {
	if loc, ok := uc.lookup(name); ok {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

// Clear clears the cache (call when shader program changes)
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
	uc.warned = make(map[string]bool)
}

// Reset points the cache at a new program.
func (uc *UniformCache) Reset(program uint32) {
	uc.program = program
	uc.Clear()
}
