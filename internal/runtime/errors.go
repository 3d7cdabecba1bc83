package runtime

import "errors"

var (
	// ErrUnknownComponent is returned when a name does not match any
	// registered component.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrUnknownPort is returned when a port is not part of a component's
	// fixed port set.
	ErrUnknownPort = errors.New("unknown port")
	// ErrIncompatiblePorts is returned when two ports differ in kind or share
	// a direction.
	ErrIncompatiblePorts = errors.New("incompatible ports")
	// ErrDuplicateComponent is returned when a name is registered twice.
	ErrDuplicateComponent = errors.New("duplicate component")
	// ErrInvalidStep is returned for a non-positive or non-finite dt, or a
	// negative duration.
	ErrInvalidStep = errors.New("invalid time step")
	// ErrNonFiniteValue is returned when an external value is NaN or infinite.
	ErrNonFiniteValue = errors.New("non-finite value")
)
