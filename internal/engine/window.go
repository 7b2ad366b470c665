package engine

import (
	"AsylumOcean/internal/config"
	"AsylumOcean/internal/input"
	"AsylumOcean/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var keyBindings = map[glfw.Key]input.Key{
	glfw.KeyW:         input.KeyForward,
	glfw.KeyS:         input.KeyBackward,
	glfw.KeyA:         input.KeyLeft,
	glfw.KeyD:         input.KeyRight,
	glfw.KeySpace:     input.KeyUp,
	glfw.KeyLeftShift: input.KeyDown,
	glfw.KeyEscape:    input.KeyQuit,
}

// Window is the GLFW window and its GL context. Cursor and scroll callbacks
// only queue events; the render loop drains them once per frame.
type Window struct {
	win      *glfw.Window
	events   input.Queue
	onResize func(width, height int32)
}

var _ Platform = (*Window)(nil)

// OpenWindow creates a 4.1 core context window and loads the GL functions.
// The context is current on the calling thread, which must stay locked.
func OpenWindow(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &InitError{Step: "glfw", Err: err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &InitError{Step: "window", Err: err}
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, &InitError{Step: "opengl", Err: err}
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{win: win}
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.events.Push(input.CursorMoved{X: x, Y: y})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.events.Push(input.Scrolled{XOffset: xoff, YOffset: yoff})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(int32(width), int32(height))
		}
	})
	setTitleBarTheme(win)

	logger.Log.Info("Window created",
		zap.String("title", cfg.Title),
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync))
	return w, nil
}

// OnResize sets the framebuffer resize handler.
func (w *Window) OnResize(fn func(width, height int32)) {
	w.onResize = fn
}

// FramebufferSize is the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) FramebufferSize() (int32, int32) {
	width, height := w.win.GetFramebufferSize()
	return int32(width), int32(height)
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.win.SetShouldClose(v)
}

func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) Sample() input.Sample {
	var keys input.KeySet
	for glfwKey, key := range keyBindings {
		if w.win.GetKey(glfwKey) == glfw.Press {
			keys = keys.With(key)
		}
	}
	return w.events.Drain(keys)
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
