package px

import "errors"

// PhysicsVersion identifies the engine ABI this package implements. CreateFoundation
// rejects callers built against a different major version.
const PhysicsVersion uint32 = 1<<24 | 0<<16

// ErrorCallback receives engine diagnostics. The engine never panics through it;
// callers typically route it into their logger.
type ErrorCallback interface {
	ReportError(msg string)
}

// Foundation is the root engine handle everything else is created from.
type Foundation struct {
	errors   ErrorCallback
	released bool
}

// CreateFoundation returns a new foundation, or an error on a version mismatch.
func CreateFoundation(version uint32, errorCallback ErrorCallback) (*Foundation, error) {
	if version>>24 != PhysicsVersion>>24 {
		return nil, errors.New("px: foundation version mismatch")
	}
	return &Foundation{errors: errorCallback}, nil
}

// Release invalidates the foundation. Handles created from it stay usable; matching
// the owning-session teardown order is the caller's responsibility.
func (f *Foundation) Release() {
	f.released = true
}

func (f *Foundation) reportError(msg string) {
	if f != nil && f.errors != nil {
		f.errors.ReportError(msg)
	}
}
