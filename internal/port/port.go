package port

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the interface kind of a port. Only ports of the same kind can be
// connected.
type Kind int

const (
	Power Kind = iota
	Signal
	Metabolite
	Mechanical
)

var kindNames = map[Kind]string{
	Power:      "power",
	Signal:     "signal",
	Metabolite: "metabolite",
	Mechanical: "mechanical",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown port kind %q", s)
}

// Direction tells whether a port is read or written by its owner.
type Direction int

const (
	In Direction = iota
	Out
)

// String returns "in" or "out".
func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}

// Port is a named, typed, directional value slot owned by one component.
type Port struct {
	name      string
	kind      Kind
	direction Direction
	value     float64
}

// New creates a port with a zero value.
func New(name string, kind Kind, direction Direction) *Port {
	return &Port{name: name, kind: kind, direction: direction}
}

// NewIn is shorthand for New(name, kind, In).
func NewIn(name string, kind Kind) *Port { return New(name, kind, In) }

// NewOut is shorthand for New(name, kind, Out).
func NewOut(name string, kind Kind) *Port { return New(name, kind, Out) }

func (p *Port) Name() string         { return p.name }
func (p *Port) Kind() Kind           { return p.kind }
func (p *Port) Direction() Direction { return p.direction }
func (p *Port) Value() float64       { return p.value }

// Set stores v. Non-finite values are stored as 0.
func (p *Port) Set(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	p.value = v
}

// String renders the port as "name(kind,direction)".
func (p *Port) String() string {
	return fmt.Sprintf("%s(%s,%s)", p.name, p.kind, p.direction)
}

// Compatible reports whether a and b may be joined by a connection: they must
// share a kind and face opposite directions.
func Compatible(a, b *Port) bool {
	return a.kind == b.kind && a.direction != b.direction
}
