package resources

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkuiper/glquad/lib/device"
)

// Program owns the linkage of one or more Shaders into an executable
// pipeline. The attached set holds non-owning references: disposing a Shader
// does not detach it here, that is the caller's job. Link status and
// activation are derived from the device on every query, never cached; at
// most one program is active per context at a time.
type Program struct {
	dev      device.Device
	handle   uint32
	attached []*Shader
	disposed bool
}

// NewProgram allocates a native program object.
func NewProgram(dev device.Device) (*Program, error) {
	handle := dev.CreateProgram()
	if handle == 0 {
		return nil, fmt.Errorf("program: %w", ErrCreateFailed)
	}
	if err := checkDevice(dev, "glCreateProgram"); err != nil {
		dev.DeleteProgram(handle)
		return nil, err
	}
	return &Program{dev: dev, handle: handle}, nil
}

// Handle returns the native handle, 0 after disposal.
func (p *Program) Handle() uint32 { return p.handle }

// Disposed reports whether Dispose has run.
func (p *Program) Disposed() bool { return p.disposed }

// Valid reports whether the program still owns a live native object.
func (p *Program) Valid() bool { return !p.disposed && p.handle != 0 }

// Attached returns the currently attached shaders in attach order.
func (p *Program) Attached() []*Shader {
	return slices.Clone(p.attached)
}

// Attach records s in the attached set and informs the device. Attaching a
// shader that is already attached is a no-op and issues no device call.
func (p *Program) Attach(s *Shader) error {
	if !p.Valid() {
		return fmt.Errorf("attach shader: %w", ErrInvalidState)
	}
	if !s.Valid() {
		return fmt.Errorf("attach disposed %s shader: %w", device.StageName(s.stage), ErrInvalidState)
	}
	if slices.Contains(p.attached, s) {
		return nil
	}
	p.dev.AttachShader(p.handle, s.handle)
	if err := checkDevice(p.dev, "glAttachShader"); err != nil {
		return err
	}
	p.attached = append(p.attached, s)
	return nil
}

// Detach is the idempotent inverse of Attach.
func (p *Program) Detach(s *Shader) error {
	if !p.Valid() {
		return fmt.Errorf("detach shader: %w", ErrInvalidState)
	}
	if !s.Valid() {
		return fmt.Errorf("detach disposed %s shader: %w", device.StageName(s.stage), ErrInvalidState)
	}
	i := slices.Index(p.attached, s)
	if i < 0 {
		return nil
	}
	p.dev.DetachShader(p.handle, s.handle)
	if err := checkDevice(p.dev, "glDetachShader"); err != nil {
		return err
	}
	p.attached = slices.Delete(p.attached, i, i+1)
	return nil
}

// Link requests device linkage of all attached shaders. A rejection
// surfaces as *LinkError carrying the diagnostic log.
func (p *Program) Link() error {
	if !p.Valid() {
		return fmt.Errorf("link program: %w", ErrInvalidState)
	}
	p.dev.LinkProgram(p.handle)
	if err := checkDevice(p.dev, "glLinkProgram"); err != nil {
		return err
	}
	if p.dev.ProgramParam(p.handle, device.LinkStatus) == device.False {
		log := strings.TrimSpace(p.dev.ProgramInfoLog(p.handle))
		if log == "" {
			log = "no diagnostic log from device"
		}
		return &LinkError{Log: log}
	}
	return nil
}

// IsLinked queries the device link status; it is never cached.
func (p *Program) IsLinked() bool {
	if !p.Valid() {
		return false
	}
	return p.dev.ProgramParam(p.handle, device.LinkStatus) == device.True
}

// Active reports whether this program occupies the device's current-program
// slot.
func (p *Program) Active() bool {
	return p.handle != 0 && p.dev.CurrentProgram() == p.handle
}

// Activate makes this program the one used by subsequent draw calls.
// Requires a successful Link first; a no-op when already active.
func (p *Program) Activate() error {
	if !p.Valid() || !p.IsLinked() {
		return fmt.Errorf("activate program: %w", ErrInvalidState)
	}
	if p.Active() {
		return nil
	}
	p.dev.UseProgram(p.handle)
	return checkDevice(p.dev, "glUseProgram")
}

// Deactivate clears the current-program slot; a no-op when this program is
// not the active one.
func (p *Program) Deactivate() error {
	if !p.Valid() {
		return fmt.Errorf("deactivate program: %w", ErrInvalidState)
	}
	if !p.Active() {
		return nil
	}
	p.dev.UseProgram(0)
	return checkDevice(p.dev, "glUseProgram")
}

// InfoLog returns the device diagnostic log, empty when disposed.
func (p *Program) InfoLog() string {
	if !p.Valid() {
		return ""
	}
	return p.dev.ProgramInfoLog(p.handle)
}

// Dispose releases the native program object and forgets the attached set.
// The attached shaders are not disposed, their ownership is separate.
func (p *Program) Dispose() {
	if p.disposed {
		return
	}
	p.dev.DeleteProgram(p.handle)
	p.handle = 0
	p.attached = nil
	p.disposed = true
}

// NewProgramFromSources is the standard construction path for the render
// loop: it builds and compiles a vertex and a fragment shader, attaches
// them, and links. The stage shaders are private to this call, so once the
// link succeeds they are detached and disposed; the linked binary does not
// need them. On any failure everything built so far is released before the
// error propagates.
func NewProgramFromSources(dev device.Device, vertexSrc, fragmentSrc string) (*Program, error) {
	program, err := NewProgram(dev)
	if err != nil {
		return nil, err
	}

	vertex, err := buildStage(dev, device.VertexShader, vertexSrc)
	if err != nil {
		program.Dispose()
		return nil, err
	}

	fragment, err := buildStage(dev, device.FragmentShader, fragmentSrc)
	if err != nil {
		vertex.Dispose()
		program.Dispose()
		return nil, err
	}

	err = attachAndLink(program, vertex, fragment)
	if err != nil {
		vertex.Dispose()
		fragment.Dispose()
		program.Dispose()
		return nil, err
	}

	err = program.Detach(vertex)
	if err == nil {
		err = program.Detach(fragment)
	}
	vertex.Dispose()
	fragment.Dispose()
	if err != nil {
		program.Dispose()
		return nil, err
	}

	return program, nil
}

func buildStage(dev device.Device, stage uint32, src string) (*Shader, error) {
	s, err := NewShader(dev, stage)
	if err != nil {
		return nil, err
	}
	if err := s.UploadSource(src); err != nil {
		s.Dispose()
		return nil, err
	}
	if err := s.Compile(); err != nil {
		s.Dispose()
		return nil, err
	}
	return s, nil
}

func attachAndLink(p *Program, vertex, fragment *Shader) error {
	if err := p.Attach(vertex); err != nil {
		return err
	}
	if err := p.Attach(fragment); err != nil {
		return err
	}
	return p.Link()
}
