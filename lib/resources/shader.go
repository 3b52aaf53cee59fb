// Package resources wraps the raw handles the graphics device hands out
// (shader objects, linked programs and data buffers) with lifecycle tracking
// and bind-state checks. Each wrapper owns exactly one native handle from
// construction until Dispose; the device itself is a shared collaborator and
// is never owned. The package is single-threaded by contract: one render
// thread drives a frame to completion before the next begins.
package resources

import (
	"fmt"
	"strings"

	"github.com/pkuiper/glquad/lib/device"
)

// Shader owns one compiled program stage. Building is two-phase: upload
// source, then compile. Uploading again invalidates the previous compile.
type Shader struct {
	dev      device.Device
	handle   uint32
	stage    uint32
	source   string
	uploaded bool
	disposed bool
}

// NewShader allocates a native shader object for the given stage
// (device.VertexShader or device.FragmentShader).
func NewShader(dev device.Device, stage uint32) (*Shader, error) {
	handle := dev.CreateShader(stage)
	if handle == 0 {
		return nil, fmt.Errorf("%s shader: %w", device.StageName(stage), ErrCreateFailed)
	}
	if err := checkDevice(dev, "glCreateShader"); err != nil {
		dev.DeleteShader(handle)
		return nil, err
	}
	return &Shader{dev: dev, handle: handle, stage: stage}, nil
}

// Handle returns the native handle, 0 after disposal.
func (s *Shader) Handle() uint32 { return s.handle }

// Stage returns the stage kind the shader was constructed for.
func (s *Shader) Stage() uint32 { return s.stage }

// Disposed reports whether Dispose has run.
func (s *Shader) Disposed() bool { return s.disposed }

// Valid reports whether the shader still owns a live native object.
func (s *Shader) Valid() bool { return !s.disposed && s.handle != 0 }

// UploadSource stores src and pushes it to the device. Calling it again
// replaces the stored source; a fresh Compile is then required.
func (s *Shader) UploadSource(src string) error {
	if !s.Valid() {
		return fmt.Errorf("upload %s shader source: %w", device.StageName(s.stage), ErrInvalidState)
	}
	s.dev.ShaderSource(s.handle, src)
	if err := checkDevice(s.dev, "glShaderSource"); err != nil {
		return err
	}
	s.source = src
	s.uploaded = true
	return nil
}

// UploadSourceLines joins lines with newlines and uploads the result.
func (s *Shader) UploadSourceLines(lines []string) error {
	return s.UploadSource(strings.Join(lines, "\n"))
}

// Compile compiles the currently uploaded source. A semantic rejection by
// the device surfaces as *CompileError carrying the diagnostic log.
func (s *Shader) Compile() error {
	if !s.Valid() || !s.uploaded {
		return fmt.Errorf("compile %s shader: %w", device.StageName(s.stage), ErrInvalidState)
	}
	s.dev.CompileShader(s.handle)
	if err := checkDevice(s.dev, "glCompileShader"); err != nil {
		return err
	}
	if s.dev.ShaderParam(s.handle, device.CompileStatus) == device.False {
		log := strings.TrimSpace(s.dev.ShaderInfoLog(s.handle))
		if log == "" {
			log = "no diagnostic log from device"
		}
		return &CompileError{Stage: s.stage, Log: log}
	}
	return nil
}

// InfoLog returns the device diagnostic log, empty when disposed.
func (s *Shader) InfoLog() string {
	if !s.Valid() {
		return ""
	}
	return s.dev.ShaderInfoLog(s.handle)
}

// Dispose releases the native shader object. Safe to call more than once;
// every operation after the first Dispose fails with ErrInvalidState.
func (s *Shader) Dispose() {
	if s.disposed {
		return
	}
	s.dev.DeleteShader(s.handle)
	s.handle = 0
	s.disposed = true
}
