// Package window owns the GLFW window and the GL context attached to it.
// One context per window, created before any wrapper is constructed.
package window

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/pkuiper/glquad/lib/config"
)

type Window struct {
	Window *glfw.Window

	Title  string
	Width  int
	Height int

	ShutdownRequested bool
}

// New initialises GLFW, opens the window and makes its GL context current
// on the calling thread.
func New(cfg *config.WindowCfg) (*Window, error) {
	w := &Window{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	w.log("Initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create window: %w", err)
	}

	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w.Window = window
	return w, nil
}

// LogContextInfo reports the GL strings of the current context. Call after
// rendering.Init.
func (w *Window) LogContextInfo() {
	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))

	w.log("OpenGL version %s / %s / %s", vendor, renderer, version)
}

// ShouldClose reports whether the user or the API asked for shutdown.
func (w *Window) ShouldClose() bool {
	return w.ShutdownRequested || w.Window.ShouldClose()
}

// RequestShutdown flags the render loop to finish the current frame and
// exit. Safe to call from any goroutine; the flag is only read between
// frames.
func (w *Window) RequestShutdown() {
	w.ShutdownRequested = true
}

func (w *Window) Swap() {
	w.Window.SwapBuffers()
}

// Destroy tears the window and GLFW down. Call after all GPU resources
// sharing the context are disposed.
func (w *Window) Destroy() {
	w.Window.Destroy()
	glfw.Terminate()
}

func (w *Window) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "window"))
}
