package history

import "github.com/vk/wetware/internal/component"

// ComponentSnapshot is the state and OUT port values of one component at
// the end of a tick.
type ComponentSnapshot struct {
	Name    string             `json:"name"`
	State   component.State    `json:"state"`
	Outputs map[string]float64 `json:"outputs"`
}

// Value looks up a state field first, then an output port.
func (c ComponentSnapshot) Value(field string) (float64, bool) {
	if v, ok := c.State.Get(field); ok {
		return v, true
	}
	v, ok := c.Outputs[field]
	return v, ok
}

// Snapshot captures every component at a given simulation time, in
// registration order.
type Snapshot struct {
	Time       float64             `json:"time"`
	Components []ComponentSnapshot `json:"components"`
}

// Component returns the snapshot of the named component.
func (s Snapshot) Component(name string) (ComponentSnapshot, bool) {
	for _, c := range s.Components {
		if c.Name == name {
			return c, true
		}
	}
	return ComponentSnapshot{}, false
}

// Capture copies the state and outputs of the given components.
func Capture(t float64, components []component.Component) Snapshot {
	snap := Snapshot{Time: t, Components: make([]ComponentSnapshot, 0, len(components))}
	for _, c := range components {
		snap.Components = append(snap.Components, ComponentSnapshot{
			Name:    c.Name(),
			State:   c.State().Clone(),
			Outputs: component.Outputs(c),
		})
	}
	return snap
}
