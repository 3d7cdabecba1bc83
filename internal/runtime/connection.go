package runtime

import (
	"fmt"

	"github.com/vk/wetware/internal/port"
	"github.com/vk/wetware/internal/portref"
)

// Connection is a directed edge from an OUT port to an IN port. It is
// immutable once created.
type Connection struct {
	SourceComponent string
	SourcePort      string
	TargetComponent string
	TargetPort      string
}

// From returns the source reference.
func (c Connection) From() portref.Ref { return portref.New(c.SourceComponent, c.SourcePort) }

// To returns the target reference.
func (c Connection) To() portref.Ref { return portref.New(c.TargetComponent, c.TargetPort) }

// String renders the connection as "a.x -> b.y".
func (c Connection) String() string {
	return fmt.Sprintf("%s -> %s", c.From(), c.To())
}

// edge is a connection with its ports resolved. Port sets are fixed at
// construction, so the pointers stay valid for the life of the runtime.
type edge struct {
	conn Connection
	src  *port.Port
	dst  *port.Port
}

func (e edge) propagate() {
	e.dst.Set(e.src.Value())
}
