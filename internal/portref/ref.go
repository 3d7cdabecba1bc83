// internal/portref/ref.go
package portref

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches one component or port name.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Ref is the structured form of a `component.port` reference.
type Ref struct {
	Component string
	Port      string
}

// New builds a Ref from its parts without validation.
func New(component, port string) Ref {
	return Ref{Component: component, Port: port}
}

// String serializes the Ref into its canonical `component.port` form.
func (r Ref) String() string {
	return r.Component + "." + r.Port
}

// ValidName reports whether name can be one side of a reference. Names
// that fail it could never be addressed by CONNECT or SET.
func ValidName(name string) bool {
	return name != "-" && nameRegex.MatchString(name)
}

// CheckName returns an error describing why name is not a valid component
// or port name.
func CheckName(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid name %q: use letters, digits, '_' or '-'", name)
	}
	return nil
}

// Parse creates a Ref from its canonical string representation.
func Parse(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("port reference cannot be empty")
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 2 {
		return Ref{}, fmt.Errorf("port reference %q must have the form component.port", raw)
	}

	for _, part := range parts {
		if part == "" {
			return Ref{}, fmt.Errorf("port reference %q contains an empty segment", raw)
		}
		if !ValidName(part) {
			return Ref{}, fmt.Errorf("invalid name %q in port reference %q", part, raw)
		}
	}

	return Ref{Component: parts[0], Port: parts[1]}, nil
}
