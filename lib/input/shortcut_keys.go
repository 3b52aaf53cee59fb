package input

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/pkuiper/glquad/lib/window"
)

// SetupShortcutKeys installs the quit shortcuts on the window: Escape, or
// Ctrl+Shift+Q.
func SetupShortcutKeys(w *window.Window) {
	w.Window.SetKeyCallback(keyCallback(w))
}

func Poll() {
	glfw.PollEvents()
}

func keyCallback(win *window.Window) func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			slog.Info("told to quit, exiting", slog.String("module", "input"))
			win.RequestShutdown()
		}
		if key == glfw.KeyQ &&
			mods&glfw.ModControl != 0 &&
			mods&glfw.ModShift != 0 {
			slog.Info("told to quit, exiting", slog.String("module", "input"))
			win.RequestShutdown()
		}
	}
}
