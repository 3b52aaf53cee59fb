// Package gldevice backs the device.Device capability surface with direct
// OpenGL 4.1-core calls. It must only be used from the thread that owns the
// GL context.
package gldevice

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/pkuiper/glquad/lib/device"
)

type GL struct{}

// New returns the OpenGL-backed device. The GL context must already be
// current on the calling thread.
func New() *GL {
	return &GL{}
}

func (*GL) CreateShader(stage uint32) uint32 {
	return gl.CreateShader(stage)
}

func (*GL) ShaderSource(shader uint32, src string) {
	csources, free := gl.Strs(src)
	size := int32(len(src))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (*GL) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (*GL) ShaderParam(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (*GL) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	clog := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
	return strings.TrimRight(clog, "\x00")
}

func (*GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (*GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (*GL) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (*GL) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*GL) ProgramParam(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (*GL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	clog := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(clog))
	return strings.TrimRight(clog, "\x00")
}

func (*GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*GL) CurrentProgram() uint32 {
	var v int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &v)
	return uint32(v)
}

func (*GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*GL) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*GL) BindBuffer(target, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (*GL) BoundBuffer(target uint32) uint32 {
	var pname uint32
	switch target {
	case device.ArrayBuffer:
		pname = gl.ARRAY_BUFFER_BINDING
	case device.ElementArrayBuffer:
		pname = gl.ELEMENT_ARRAY_BUFFER_BINDING
	default:
		return 0
	}
	var v int32
	gl.GetIntegerv(pname, &v)
	return uint32(v)
}

func (*GL) BufferData(target uint32, size int, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, size, nil, usage)
		return
	}
	gl.BufferData(target, size, gl.Ptr(data), usage)
}

func (*GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (*GL) Err() uint32 {
	return gl.GetError()
}
