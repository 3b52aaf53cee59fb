package resources_test

import (
	"errors"
	"testing"

	"github.com/pkuiper/glquad/lib/device"
	"github.com/pkuiper/glquad/lib/resources"
)

func compiledShader(t *testing.T, dev *fakeDevice, stage uint32, src string) *resources.Shader {
	t.Helper()
	s, err := resources.NewShader(dev, stage)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	if err := s.UploadSource(src); err != nil {
		t.Fatalf("UploadSource() error = %v", err)
	}
	if err := s.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return s
}

func TestNewProgramHandle(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	if p.Handle() == 0 {
		t.Fatal("Handle() = 0, want non-zero")
	}
}

func TestNewProgramCreateFailed(t *testing.T) {
	dev := newFakeDevice()
	dev.failCreate = true
	_, err := resources.NewProgram(dev)
	if !errors.Is(err, resources.ErrCreateFailed) {
		t.Fatalf("NewProgram() error = %v, want ErrCreateFailed", err)
	}
}

func TestAttachIdempotent(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	s := compiledShader(t, dev, device.VertexShader, goodVertexSrc)

	if err := p.Attach(s); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := p.Attach(s); err != nil {
		t.Fatalf("second Attach() error = %v", err)
	}
	if got := len(p.Attached()); got != 1 {
		t.Fatalf("len(Attached()) = %d, want 1", got)
	}
	if dev.calls["AttachShader"] != 1 {
		t.Fatalf("AttachShader called %d times, want 1", dev.calls["AttachShader"])
	}
}

func TestAttachDisposedShader(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	s := compiledShader(t, dev, device.VertexShader, goodVertexSrc)
	s.Dispose()
	if err := p.Attach(s); !errors.Is(err, resources.ErrInvalidState) {
		t.Fatalf("Attach(disposed) error = %v, want ErrInvalidState", err)
	}
}

func TestDetachIdempotent(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	s := compiledShader(t, dev, device.VertexShader, goodVertexSrc)
	if err := p.Detach(s); err != nil {
		t.Fatalf("Detach() of never-attached shader error = %v", err)
	}
	if dev.calls["DetachShader"] != 0 {
		t.Fatalf("DetachShader called %d times, want 0", dev.calls["DetachShader"])
	}

	if err := p.Attach(s); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := p.Detach(s); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	if got := len(p.Attached()); got != 0 {
		t.Fatalf("len(Attached()) = %d after detach, want 0", got)
	}
}

func TestLinkNoShaders(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	var linkErr *resources.LinkError
	if err := p.Link(); !errors.As(err, &linkErr) {
		t.Fatalf("Link() with no shaders error = %v, want *LinkError", err)
	}
	if linkErr.Log == "" {
		t.Fatal("LinkError carries an empty diagnostic log")
	}
}

func TestLinkUncompiledShader(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	s, err := resources.NewShader(dev, device.VertexShader)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	if err := s.UploadSource(goodVertexSrc); err != nil {
		t.Fatalf("UploadSource() error = %v", err)
	}
	if err := p.Attach(s); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	var linkErr *resources.LinkError
	if err := p.Link(); !errors.As(err, &linkErr) {
		t.Fatalf("Link() with uncompiled shader error = %v, want *LinkError", err)
	}
}

func TestActivateBeforeLink(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	if err := p.Activate(); !errors.Is(err, resources.ErrInvalidState) {
		t.Fatalf("Activate() before link error = %v, want ErrInvalidState", err)
	}
}

func TestActivateDeactivateRoundTrip(t *testing.T) {
	dev := newFakeDevice()
	p := linkedProgram(t, dev)

	if err := p.Activate(); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !p.Active() {
		t.Fatal("Active() = false after Activate")
	}
	// already active, must not hit the device again
	if err := p.Activate(); err != nil {
		t.Fatalf("second Activate() error = %v", err)
	}
	if dev.calls["UseProgram"] != 1 {
		t.Fatalf("UseProgram called %d times, want 1", dev.calls["UseProgram"])
	}

	if err := p.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if dev.CurrentProgram() != 0 {
		t.Fatalf("current-program slot = %d after Deactivate, want 0", dev.CurrentProgram())
	}
	if err := p.Deactivate(); err != nil {
		t.Fatalf("second Deactivate() error = %v", err)
	}
	if dev.calls["UseProgram"] != 2 {
		t.Fatalf("UseProgram called %d times, want 2", dev.calls["UseProgram"])
	}
}

func linkedProgram(t *testing.T, dev *fakeDevice) *resources.Program {
	t.Helper()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	v := compiledShader(t, dev, device.VertexShader, goodVertexSrc)
	f := compiledShader(t, dev, device.FragmentShader, goodFragmentSrc)
	if err := p.Attach(v); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := p.Attach(f); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := p.Link(); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	return p
}

func TestIsLinkedDerived(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgram(dev)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	if p.IsLinked() {
		t.Fatal("IsLinked() = true before Link")
	}
	p = linkedProgram(t, dev)
	if !p.IsLinked() {
		t.Fatal("IsLinked() = false after Link")
	}
}

func TestProgramDisposeIdempotent(t *testing.T) {
	dev := newFakeDevice()
	p := linkedProgram(t, dev)
	shaders := p.Attached()

	p.Dispose()
	p.Dispose()
	if p.Handle() != 0 {
		t.Fatalf("Handle() = %d after Dispose, want 0", p.Handle())
	}
	if len(p.Attached()) != 0 {
		t.Fatal("Attached() non-empty after Dispose")
	}
	if dev.calls["DeleteProgram"] != 1 {
		t.Fatalf("DeleteProgram called %d times, want 1", dev.calls["DeleteProgram"])
	}
	// attached shaders are not owned and must survive program disposal
	for _, s := range shaders {
		if !s.Valid() {
			t.Fatal("program disposal disposed an attached shader")
		}
	}
}

func TestNewProgramFromSources(t *testing.T) {
	dev := newFakeDevice()
	p, err := resources.NewProgramFromSources(dev, goodVertexSrc, goodFragmentSrc)
	if err != nil {
		t.Fatalf("NewProgramFromSources() error = %v", err)
	}
	if !p.IsLinked() {
		t.Fatal("IsLinked() = false after NewProgramFromSources")
	}
	// the stage shaders are private to the call and must not leak
	if len(p.Attached()) != 0 {
		t.Fatalf("len(Attached()) = %d, want 0", len(p.Attached()))
	}
	if len(dev.shaders) != 0 {
		t.Fatalf("%d shader objects leaked on the device", len(dev.shaders))
	}
}

func TestNewProgramFromSourcesBadFragment(t *testing.T) {
	dev := newFakeDevice()
	_, err := resources.NewProgramFromSources(dev, goodVertexSrc, "bad glsl")
	var compileErr *resources.CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("NewProgramFromSources() error = %v, want *CompileError", err)
	}
	if len(dev.shaders) != 0 || len(dev.programs) != 0 {
		t.Fatalf("failed construction leaked objects: %d shaders, %d programs",
			len(dev.shaders), len(dev.programs))
	}
}
