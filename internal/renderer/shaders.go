package renderer

import (
	"AsylumOcean/internal/logger"
	"errors"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================

// Shader is a vertex+fragment program loaded from two source files. It is
// either linked and usable, or its program is 0 and every call on it is a
// no-op.
type Shader struct {
	Name         string
	VertexPath   string
	FragmentPath string
	program      uint32
	uniforms     *UniformCache
}

// LoadShaderFromFiles reads, compiles and links a program. On failure the
// returned Shader is still non-nil but not Valid, so a lenient caller can keep
// running with it. With failFast the first error stops the build; otherwise
// both stages are compiled and linking is attempted so every driver message
// is reported at once.
func LoadShaderFromFiles(name, vertexPath, fragmentPath string, failFast bool) (*Shader, error) {
	shader := &Shader{
		Name:         name,
		VertexPath:   vertexPath,
		FragmentPath: fragmentPath,
		uniforms:     NewUniformCache(0),
	}

	program, err := buildProgram(name, vertexPath, fragmentPath, failFast)
	if err != nil {
		return shader, err
	}
	shader.program = program
	shader.uniforms.Reset(program)

	logger.Log.Info("Shader program linked",
		zap.String("name", name),
		zap.Uint32("program", program))
	return shader, nil
}

// Reload rebuilds the program from disk. The old program stays active when
// the rebuild fails.
func (shader *Shader) Reload(failFast bool) error {
	program, err := buildProgram(shader.Name, shader.VertexPath, shader.FragmentPath, failFast)
	if err != nil {
		return err
	}
	if shader.program != 0 {
		gl.DeleteProgram(shader.program)
	}
	shader.program = program
	shader.uniforms.Reset(program)
	return nil
}

func (shader *Shader) Valid() bool {
	return shader != nil && shader.program != 0
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Delete() {
	if shader.program != 0 {
		gl.DeleteProgram(shader.program)
		shader.program = 0
	}
}

func (shader *Shader) SetFloat(name string, value float32) {
	if shader.Valid() {
		shader.uniforms.SetFloat(name, value)
	}
}

func (shader *Shader) SetInt(name string, value int32) {
	if shader.Valid() {
		shader.uniforms.SetInt(name, value)
	}
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	if shader.Valid() {
		shader.uniforms.SetVec3(name, value)
	}
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	if shader.Valid() {
		shader.uniforms.SetMat4(name, value)
	}
}

// readSources reads both stages before anything touches the driver.
func readSources(vertexPath, fragmentPath string) (string, string, error) {
	var errs []error
	vertex, err := os.ReadFile(vertexPath)
	if err != nil {
		errs = append(errs, &FileReadError{Path: vertexPath, Err: err})
	}
	fragment, err := os.ReadFile(fragmentPath)
	if err != nil {
		errs = append(errs, &FileReadError{Path: fragmentPath, Err: err})
	}
	return string(vertex), string(fragment), errors.Join(errs...)
}

func buildProgram(name, vertexPath, fragmentPath string, failFast bool) (uint32, error) {
	vertexSource, fragmentSource, err := readSources(vertexPath, fragmentPath)
	if err != nil {
		return 0, err
	}

	var errs []error
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER, vertexPath)
	if err != nil {
		if failFast {
			gl.DeleteShader(vertexShader)
			return 0, err
		}
		errs = append(errs, err)
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER, fragmentPath)
	if err != nil {
		if failFast {
			gl.DeleteShader(vertexShader)
			gl.DeleteShader(fragmentShader)
			return 0, err
		}
		errs = append(errs, err)
	}

	program, err := linkProgram(name, vertexShader, fragmentShader)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		gl.DeleteProgram(program)
		return 0, errors.Join(errs...)
	}
	return program, nil
}

// compileShader always returns the shader object so the caller owns its
// deletion, even when compilation failed.
func compileShader(source string, shaderType uint32, path string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return shader, &CompileError{Stage: stageName(shaderType), Path: path, Log: strings.TrimRight(log, "\x00")}
	}

	logger.Log.Debug("Shader compiled", zap.String("stage", stageName(shaderType)), zap.String("path", path))
	return shader, nil
}

func linkProgram(name string, vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		return program, &LinkError{Program: name, Log: strings.TrimRight(log, "\x00")}
	}
	return program, nil
}

func stageName(shaderType uint32) string {
	if shaderType == gl.FRAGMENT_SHADER {
		return "FRAGMENT"
	}
	return "VERTEX"
}
