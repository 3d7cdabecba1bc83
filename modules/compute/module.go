// Package compute implements the decision-making variant. It keeps a short
// memory of the health signal and raises a control signal when health is
// low or trending down.
package compute

import (
	"math"

	"github.com/vk/wetware/internal/component"
	"github.com/vk/wetware/internal/port"
	"github.com/vk/wetware/internal/registry"
)

// TypeName is the registry name of this variant.
const TypeName = "compute"

// Port names.
const (
	SensorIn    = "sensor_in"
	StatusIn    = "status_in"
	ATPIn       = "atp_in"
	ControlOut  = "control_out"
	DecisionOut = "decision_out"
)

// MemorySize is the number of most recent status values remembered.
const MemorySize = 10

const (
	// ATP supply at which processing power saturates.
	fullPowerATP = 20.0
	// Control signal emitted while the organism is healthy.
	maintenanceControl = 0.1
	decisionThreshold  = 0.3
	trendAlarm         = -0.1
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the compute factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(TypeName, func(name string) component.Component { return New(name) })
}

// Compute turns health status into control decisions.
type Compute struct {
	component.Base

	ProcessingPower float64
	Threshold       float64
	memory          []float64
}

// New constructs a Compute component with its initial state.
func New(name string) *Compute {
	return &Compute{
		Base: component.NewBase(TypeName, name,
			port.NewIn(SensorIn, port.Signal),
			port.NewIn(StatusIn, port.Signal),
			port.NewIn(ATPIn, port.Power),
			port.NewOut(ControlOut, port.Signal),
			port.NewOut(DecisionOut, port.Signal),
		),
		ProcessingPower: 1.0,
		Threshold:       0.5,
		memory:          make([]float64, 0, MemorySize+1),
	}
}

// Memory returns the remembered status values, oldest first.
func (c *Compute) Memory() []float64 {
	out := make([]float64, len(c.memory))
	copy(out, c.memory)
	return out
}

// State exports processing_power, memory_len and threshold. The memory
// itself is not numeric and is available through Memory; memory_len is
// marked derived.
func (c *Compute) State() component.State {
	return component.State{
		{Name: "processing_power", Value: c.ProcessingPower},
		{Name: "memory_len", Value: float64(len(c.memory)), Derived: true},
		{Name: "threshold", Value: c.Threshold},
	}
}

// Tick records the current status and emits control and decision signals.
func (c *Compute) Tick(dt float64) {
	if !c.Active() {
		return
	}

	status := c.In(StatusIn)
	atp := c.In(ATPIn)

	c.ProcessingPower = math.Min(1.0, atp/fullPowerATP)
	c.remember(status)

	control := maintenanceControl
	if status < c.Threshold || c.trend() < trendAlarm {
		control = (c.Threshold - status) * c.ProcessingPower
	}

	c.Emit(ControlOut, math.Max(0, math.Min(1, control)))
	decision := 0.0
	if control > decisionThreshold {
		decision = 1.0
	}
	c.Emit(DecisionOut, decision)
}

func (c *Compute) remember(v float64) {
	c.memory = append(c.memory, v)
	if len(c.memory) > MemorySize {
		// Shift in place so the backing array does not grow.
		copy(c.memory, c.memory[1:])
		c.memory = c.memory[:MemorySize]
	}
}

func (c *Compute) trend() float64 {
	if len(c.memory) < 2 {
		return 0
	}
	return c.memory[len(c.memory)-1] - c.memory[0]
}
