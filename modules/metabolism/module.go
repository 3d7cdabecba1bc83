// Package metabolism implements waste processing and internal homeostasis.
// It turns waste and CO2 into recyclable output, tracks toxins and pH, and
// reports an overall health signal in [0, 1].
package metabolism

import (
	"math"

	"github.com/vk/wetware/internal/component"
	"github.com/vk/wetware/internal/port"
	"github.com/vk/wetware/internal/registry"
)

// TypeName is the registry name of this variant.
const TypeName = "metabolism"

// Port names.
const (
	WasteIn     = "waste_in"
	CO2In       = "co2_in"
	ATPIn       = "atp_in"
	RecycledOut = "recycled_out"
	StatusOut   = "status_out"
)

const (
	neutralPH = 7.4
	// Below this ATP supply the filter degrades.
	minATP = 5.0
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the metabolism factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(TypeName, func(name string) component.Component { return New(name) })
}

// Metabolism filters waste using ATP.
type Metabolism struct {
	component.Base

	ToxinLevel     float64
	PHLevel        float64
	FilterCapacity float64
}

// New constructs a Metabolism component with its initial state.
func New(name string) *Metabolism {
	return &Metabolism{
		Base: component.NewBase(TypeName, name,
			port.NewIn(WasteIn, port.Metabolite),
			port.NewIn(CO2In, port.Metabolite),
			port.NewIn(ATPIn, port.Power),
			port.NewOut(RecycledOut, port.Metabolite),
			port.NewOut(StatusOut, port.Signal),
		),
		ToxinLevel:     0.0,
		PHLevel:        neutralPH,
		FilterCapacity: 1.0,
	}
}

// State exports toxin_level, ph_level and filter_capacity.
func (m *Metabolism) State() component.State {
	return component.State{
		{Name: "toxin_level", Value: m.ToxinLevel},
		{Name: "ph_level", Value: m.PHLevel},
		{Name: "filter_capacity", Value: m.FilterCapacity},
	}
}

// Tick processes one step of waste and CO2.
func (m *Metabolism) Tick(dt float64) {
	if !m.Active() {
		return
	}

	waste := m.In(WasteIn)
	co2 := m.In(CO2In)
	atp := m.In(ATPIn)

	if atp < minATP {
		m.FilterCapacity *= 0.9
	} else {
		m.FilterCapacity = math.Min(1.0, m.FilterCapacity+0.1*dt)
	}

	processed := (waste + co2) * m.FilterCapacity * dt
	m.ToxinLevel = component.Finite(m.ToxinLevel + (waste-processed)*0.1)
	m.ToxinLevel = math.Max(0, m.ToxinLevel-0.05*dt)

	// CO2 acidifies; the buffer pulls pH back towards neutral.
	m.PHLevel = component.Finite(m.PHLevel - co2*0.01*dt)
	m.PHLevel = component.Finite(m.PHLevel + (neutralPH-m.PHLevel)*0.1*dt)

	m.Emit(RecycledOut, processed*0.3)
	m.Emit(StatusOut, m.health())
}

func (m *Metabolism) health() float64 {
	h := (1 - m.ToxinLevel/10) * (1 - 2*math.Abs(m.PHLevel-neutralPH))
	return clamp01(h)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
