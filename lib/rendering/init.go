package rendering

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Init loads the OpenGL function pointers for the context that is current
// on the calling thread.
func Init() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	slog.Info(fmt.Sprintf("OpenGL version '%s'", version), slog.String("module", "rendering"))

	return nil
}
