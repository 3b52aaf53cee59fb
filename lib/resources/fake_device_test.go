package resources_test

import (
	"strings"

	"github.com/pkuiper/glquad/lib/device"
)

// fakeDevice is a scripted, call-counting stand-in for the GL context. Its
// tiny "compiler" accepts any source containing "void main" and rejects the
// rest with a diagnostic, which is enough to drive every wrapper state
// transition without a real context.
type fakeDevice struct {
	nextHandle uint32
	errQueue   []uint32
	failCreate bool

	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	buffers  map[uint32]bool
	current  uint32
	bound    map[uint32]uint32

	calls map[string]int
}

type fakeShader struct {
	stage    uint32
	source   string
	compiled bool
	infoLog  string
}

type fakeProgram struct {
	attached []uint32
	linked   bool
	infoLog  string
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
		buffers:  make(map[uint32]bool),
		bound:    make(map[uint32]uint32),
		calls:    make(map[string]int),
	}
}

func (f *fakeDevice) pushError(code uint32) {
	f.errQueue = append(f.errQueue, code)
}

func (f *fakeDevice) handleOut() uint32 {
	if f.failCreate {
		return 0
	}
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeDevice) CreateShader(stage uint32) uint32 {
	f.calls["CreateShader"]++
	h := f.handleOut()
	if h != 0 {
		f.shaders[h] = &fakeShader{stage: stage}
	}
	return h
}

func (f *fakeDevice) ShaderSource(shader uint32, src string) {
	f.calls["ShaderSource"]++
	if s, ok := f.shaders[shader]; ok {
		s.source = src
		s.compiled = false
	}
}

func (f *fakeDevice) CompileShader(shader uint32) {
	f.calls["CompileShader"]++
	s, ok := f.shaders[shader]
	if !ok {
		return
	}
	s.compiled = strings.Contains(s.source, "void main")
	if s.compiled {
		s.infoLog = ""
	} else {
		s.infoLog = "0:1: error: syntax error, unexpected IDENTIFIER"
	}
}

func (f *fakeDevice) ShaderParam(shader uint32, pname uint32) int32 {
	if s, ok := f.shaders[shader]; ok && pname == device.CompileStatus && s.compiled {
		return device.True
	}
	return device.False
}

func (f *fakeDevice) ShaderInfoLog(shader uint32) string {
	if s, ok := f.shaders[shader]; ok {
		return s.infoLog
	}
	return ""
}

func (f *fakeDevice) DeleteShader(shader uint32) {
	f.calls["DeleteShader"]++
	delete(f.shaders, shader)
}

func (f *fakeDevice) CreateProgram() uint32 {
	f.calls["CreateProgram"]++
	h := f.handleOut()
	if h != 0 {
		f.programs[h] = &fakeProgram{}
	}
	return h
}

func (f *fakeDevice) AttachShader(program, shader uint32) {
	f.calls["AttachShader"]++
	if p, ok := f.programs[program]; ok {
		p.attached = append(p.attached, shader)
	}
}

func (f *fakeDevice) DetachShader(program, shader uint32) {
	f.calls["DetachShader"]++
	p, ok := f.programs[program]
	if !ok {
		return
	}
	for i, h := range p.attached {
		if h == shader {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
}

func (f *fakeDevice) LinkProgram(program uint32) {
	f.calls["LinkProgram"]++
	p, ok := f.programs[program]
	if !ok {
		return
	}
	if len(p.attached) == 0 {
		p.linked = false
		p.infoLog = "error: no shader objects attached"
		return
	}
	for _, h := range p.attached {
		s, ok := f.shaders[h]
		if !ok || !s.compiled {
			p.linked = false
			p.infoLog = "error: attached shader is not compiled"
			return
		}
	}
	p.linked = true
	p.infoLog = ""
}

func (f *fakeDevice) ProgramParam(program uint32, pname uint32) int32 {
	if p, ok := f.programs[program]; ok && pname == device.LinkStatus && p.linked {
		return device.True
	}
	return device.False
}

func (f *fakeDevice) ProgramInfoLog(program uint32) string {
	if p, ok := f.programs[program]; ok {
		return p.infoLog
	}
	return ""
}

func (f *fakeDevice) UseProgram(program uint32) {
	f.calls["UseProgram"]++
	f.current = program
}

func (f *fakeDevice) CurrentProgram() uint32 {
	return f.current
}

func (f *fakeDevice) DeleteProgram(program uint32) {
	f.calls["DeleteProgram"]++
	delete(f.programs, program)
	if f.current == program {
		f.current = 0
	}
}

func (f *fakeDevice) GenBuffer() uint32 {
	f.calls["GenBuffer"]++
	h := f.handleOut()
	if h != 0 {
		f.buffers[h] = true
	}
	return h
}

func (f *fakeDevice) BindBuffer(target, buffer uint32) {
	f.calls["BindBuffer"]++
	f.bound[target] = buffer
}

func (f *fakeDevice) BoundBuffer(target uint32) uint32 {
	return f.bound[target]
}

func (f *fakeDevice) BufferData(target uint32, size int, data []byte, usage uint32) {
	f.calls["BufferData"]++
	if f.bound[target] == 0 {
		f.pushError(device.InvalidOperation)
	}
}

func (f *fakeDevice) DeleteBuffer(buffer uint32) {
	f.calls["DeleteBuffer"]++
	delete(f.buffers, buffer)
	for target, bound := range f.bound {
		if bound == buffer {
			f.bound[target] = 0
		}
	}
}

func (f *fakeDevice) Err() uint32 {
	if len(f.errQueue) == 0 {
		return device.NoError
	}
	code := f.errQueue[0]
	f.errQueue = f.errQueue[1:]
	return code
}
