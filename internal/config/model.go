package config

import (
	"fmt"

	"github.com/vk/wetware/internal/portref"
)

// Kind identifies the type of a Statement.
type Kind int

const (
	KindComponent Kind = iota
	KindConnect
	KindSet
)

// String returns the keyword of the statement kind.
func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "COMPONENT"
	case KindConnect:
		return "CONNECT"
	case KindSet:
		return "SET"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source locates a statement in its description file.
type Source struct {
	File string
	Line int
}

// String renders the source as "file:line", or "line N" without a file.
func (s Source) String() string {
	if s.File == "" {
		return fmt.Sprintf("line %d", s.Line)
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Statement is one instruction of a graph description. Only the fields
// relevant to Kind are set.
type Statement struct {
	Kind   Kind
	Source Source

	// KindComponent
	Name string
	Type string

	// KindConnect
	From portref.Ref
	To   portref.Ref

	// KindSet
	Target portref.Ref
	Value  float64
}

// String renders the statement in the line-oriented graph language.
func (s Statement) String() string {
	switch s.Kind {
	case KindComponent:
		return fmt.Sprintf("COMPONENT %s FROM %s", s.Name, s.Type)
	case KindConnect:
		return fmt.Sprintf("CONNECT %s TO %s", s.From, s.To)
	case KindSet:
		return fmt.Sprintf("SET %s = %v", s.Target, s.Value)
	default:
		return s.Kind.String()
	}
}

// Component builds a COMPONENT statement.
func Component(name, typeName string) Statement {
	return Statement{Kind: KindComponent, Name: name, Type: typeName}
}

// Connect builds a CONNECT statement.
func Connect(from, to portref.Ref) Statement {
	return Statement{Kind: KindConnect, From: from, To: to}
}

// Set builds a SET statement.
func Set(target portref.Ref, v float64) Statement {
	return Statement{Kind: KindSet, Target: target, Value: v}
}

// Graph is an ordered list of statements. Order matters: a statement may
// only refer to components declared before it.
type Graph struct {
	Statements []Statement
}

// Append adds statements at the end of the graph.
func (g *Graph) Append(s ...Statement) {
	g.Statements = append(g.Statements, s...)
}

// Merge appends all statements of other.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	g.Append(other.Statements...)
}
