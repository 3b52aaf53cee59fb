package resources

import (
	"errors"
	"fmt"

	"github.com/pkuiper/glquad/lib/device"
)

// ErrCreateFailed means the device handed back a zero handle while
// constructing a wrapper. Fatal to the constructing call.
var ErrCreateFailed = errors.New("could not create native object")

// ErrInvalidState means an operation was attempted on a disposed object, an
// object not in the required state (unlinked, unbound), or with a missing
// precondition such as absent shader source. Always a contract violation by
// the caller, never recovered automatically.
var ErrInvalidState = errors.New("invalid state")

// DeviceFault carries a non-NoError code popped from the device error queue
// after a state-changing call.
type DeviceFault struct {
	Op   string
	Code uint32
}

func (e *DeviceFault) Error() string {
	return fmt.Sprintf("%s: device fault 0x%04x (%s)", e.Op, e.Code, device.ErrorName(e.Code))
}

// CompileError means the device semantically rejected the shader source.
// Distinct from DeviceFault: the API was used correctly, the GLSL was not.
type CompileError struct {
	Stage uint32
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("could not compile %s shader: %s", device.StageName(e.Stage), e.Log)
}

// LinkError means the device rejected the program linkage.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("could not link program: %s", e.Log)
}

// checkDevice polls the error queue once and converts a fault into an error.
// Status queries are not run through this; they report device state directly.
func checkDevice(dev device.Device, op string) error {
	if code := dev.Err(); code != device.NoError {
		return &DeviceFault{Op: op, Code: code}
	}
	return nil
}
