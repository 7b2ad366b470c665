package renderer

import "fmt"

// FileReadError is returned when a shader source file cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read shader source %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// CompileError carries the driver's info log for one failed stage.
type CompileError struct {
	Stage string // VERTEX or FRAGMENT
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader %s: %s", e.Stage, e.Path, e.Log)
}

type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link program %s: %s", e.Program, e.Log)
}

// TextureDecodeError is returned when an image file is missing or corrupt.
type TextureDecodeError struct {
	Path string
	Err  error
}

func (e *TextureDecodeError) Error() string {
	return fmt.Sprintf("decode texture %s: %v", e.Path, e.Err)
}

func (e *TextureDecodeError) Unwrap() error { return e.Err }
