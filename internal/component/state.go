package component

// Field is one named numeric state value. Derived fields summarize state
// that is not itself numeric and are left out of the console status.
type Field struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Derived bool    `json:"derived,omitempty"`
}

// State is an ordered export of a component's internal state. Order is the
// declaration order of the variant's fields.
type State []Field

// Get returns the value of the named field.
func (s State) Get(name string) (float64, bool) {
	for _, f := range s {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// Map returns the state as a name to value mapping.
func (s State) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, f := range s {
		m[f.Name] = f.Value
	}
	return m
}

// Clone returns an independent copy.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	copy(out, s)
	return out
}
