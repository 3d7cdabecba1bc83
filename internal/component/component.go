package component

import (
	"fmt"

	"github.com/vk/wetware/internal/port"
)

// DefaultVersion is assigned to components constructed without one.
const DefaultVersion = "1.0.0"

// Component is a unit of the organism graph with ports, state and a
// per-step update.
type Component interface {
	Name() string
	Version() string
	// Type is the registry name of the variant, e.g. "power".
	Type() string

	// Port returns the named port, or false if it is not part of the fixed set.
	Port(name string) (*port.Port, bool)
	// Ports returns every port in declaration order.
	Ports() []*port.Port

	// State exports the internal state as ordered name/value pairs. The
	// returned slice is a copy.
	State() State

	Active() bool
	SetActive(active bool)

	// Tick advances the component by dt. It reads IN ports and state, then
	// writes state and OUT ports. It must be a no-op when the component is
	// inactive.
	Tick(dt float64)
}

// Base carries the name, version, port set and active flag of a component.
type Base struct {
	name    string
	version string
	kind    string
	ports   []*port.Port
	byName  map[string]*port.Port
	active  bool
}

// NewBase builds the bookkeeping for a component. The port set is fixed
// from here on. Duplicate port names are a programming error and panic.
func NewBase(kind, name string, ports ...*port.Port) Base {
	b := Base{
		name:    name,
		version: DefaultVersion,
		kind:    kind,
		ports:   ports,
		byName:  make(map[string]*port.Port, len(ports)),
		active:  true,
	}
	for _, p := range ports {
		if _, exists := b.byName[p.Name()]; exists {
			panic(fmt.Sprintf("component %q declares port %q twice", name, p.Name()))
		}
		b.byName[p.Name()] = p
	}
	return b
}

func (b *Base) Name() string    { return b.name }
func (b *Base) Version() string { return b.version }
func (b *Base) Type() string    { return b.kind }

// SetVersion overrides the default version string.
func (b *Base) SetVersion(v string) { b.version = v }

func (b *Base) Port(name string) (*port.Port, bool) {
	p, ok := b.byName[name]
	return p, ok
}

func (b *Base) Ports() []*port.Port {
	out := make([]*port.Port, len(b.ports))
	copy(out, b.ports)
	return out
}

func (b *Base) Active() bool          { return b.active }
func (b *Base) SetActive(active bool) { b.active = active }

// In returns the value of an IN port that the variant itself declared.
func (b *Base) In(name string) float64 {
	return b.byName[name].Value()
}

// Emit writes the value of an OUT port that the variant itself declared.
func (b *Base) Emit(name string, v float64) {
	b.byName[name].Set(v)
}

// Outputs returns the current OUT port values keyed by port name.
func Outputs(c Component) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range c.Ports() {
		if p.Direction() == port.Out {
			out[p.Name()] = p.Value()
		}
	}
	return out
}

// Describe renders a component as "type(name@version)".
func Describe(c Component) string {
	return fmt.Sprintf("%s(%s@%s)", c.Type(), c.Name(), c.Version())
}
