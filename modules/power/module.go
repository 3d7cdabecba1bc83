// Package power implements the energy supply variant: glucose and oxygen
// in, ATP, heat and CO2 out.
package power

import (
	"math"

	"github.com/vk/wetware/internal/component"
	"github.com/vk/wetware/internal/port"
	"github.com/vk/wetware/internal/registry"
)

// TypeName is the registry name of this variant.
const TypeName = "power"

// Port names.
const (
	GlucoseIn = "glucose_in"
	OxygenIn  = "oxygen_in"
	ATPOut    = "atp_out"
	HeatOut   = "heat_out"
	CO2Out    = "co2_out"
)

// maxATPOutput throttles how much ATP leaves the reserve per step.
const maxATPOutput = 50.0

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the power factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(TypeName, func(name string) component.Component { return New(name) })
}

// Power converts glucose and oxygen into ATP.
type Power struct {
	component.Base

	Efficiency  float64
	ATPReserve  float64
	Temperature float64
}

// New constructs a Power component with its initial state.
func New(name string) *Power {
	return &Power{
		Base: component.NewBase(TypeName, name,
			port.NewIn(GlucoseIn, port.Metabolite),
			port.NewIn(OxygenIn, port.Metabolite),
			port.NewOut(ATPOut, port.Power),
			port.NewOut(HeatOut, port.Power),
			port.NewOut(CO2Out, port.Metabolite),
		),
		Efficiency:  0.4,
		ATPReserve:  100.0,
		Temperature: 37.0,
	}
}

// State exports efficiency, atp_reserve and temperature.
func (p *Power) State() component.State {
	return component.State{
		{Name: "efficiency", Value: p.Efficiency},
		{Name: "atp_reserve", Value: p.ATPReserve},
		{Name: "temperature", Value: p.Temperature},
	}
}

// Tick runs one step of the simplified respiration reaction
// C6H12O6 + 6 O2 -> 6 CO2 + 38 ATP.
func (p *Power) Tick(dt float64) {
	if !p.Active() {
		return
	}

	glucose := p.In(GlucoseIn)
	oxygen := p.In(OxygenIn)

	rate := math.Min(glucose, oxygen/6) * p.Efficiency
	atpProduced := rate * 38 * dt
	co2Produced := rate * 6 * dt
	heatProduced := rate * (1 - p.Efficiency) * dt

	p.ATPReserve = component.Finite(p.ATPReserve + atpProduced)
	p.Temperature = component.Finite(p.Temperature + heatProduced*0.1)

	atpOut := math.Min(p.ATPReserve, maxATPOutput)
	p.Emit(ATPOut, atpOut)
	p.Emit(CO2Out, co2Produced)
	p.Emit(HeatOut, heatProduced)

	p.ATPReserve = math.Max(0, p.ATPReserve-atpOut*dt)
}
