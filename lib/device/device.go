// Package device defines the capability surface the GPU-resource wrappers
// need from a graphics context. The render loop uses the OpenGL-backed
// implementation in gldevice; tests substitute a fake.
package device

// Enum values match the OpenGL numeric constants so the real backend can
// pass them through unchanged.
const (
	VertexShader   uint32 = 0x8B31
	FragmentShader uint32 = 0x8B30

	ArrayBuffer        uint32 = 0x8892
	ElementArrayBuffer uint32 = 0x8893

	StaticDraw  uint32 = 0x88E4
	DynamicDraw uint32 = 0x88E8
	StreamDraw  uint32 = 0x88E0

	CompileStatus uint32 = 0x8B81
	LinkStatus    uint32 = 0x8B82

	False int32 = 0
	True  int32 = 1
)

// Error-queue codes.
const (
	NoError                     uint32 = 0x0000
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506
)

// Device is the set of context operations the wrappers drive. Every method
// is a direct, synchronous call into the graphics backend; the process-wide
// binding slots (current program, current buffer per target) belong to the
// device, not to any wrapper.
type Device interface {
	CreateShader(stage uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderParam(shader uint32, pname uint32) int32
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramParam(program uint32, pname uint32) int32
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	CurrentProgram() uint32
	DeleteProgram(program uint32)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BoundBuffer(target uint32) uint32
	BufferData(target uint32, size int, data []byte, usage uint32)
	DeleteBuffer(buffer uint32)

	// Err pops one code from the device error queue, NoError when empty.
	Err() uint32
}

// ErrorName returns the symbolic name of an error-queue code.
func ErrorName(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return "GL_UNKNOWN_ERROR"
}

// StageName returns a human-readable name for a shader stage enum.
func StageName(stage uint32) string {
	switch stage {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return "unknown"
}
