package metabolism

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wetware/internal/component"
	"github.com/vk/wetware/internal/history"
	"github.com/vk/wetware/internal/registry"
)

func set(t *testing.T, c component.Component, name string, v float64) {
	t.Helper()
	p, ok := c.Port(name)
	require.True(t, ok, "port %s", name)
	p.Set(v)
}

func TestMetabolism_InitialState(t *testing.T) {
	t.Parallel()

	m := New("m")
	assert.Equal(t, component.State{
		{Name: "toxin_level", Value: 0},
		{Name: "ph_level", Value: 7.4},
		{Name: "filter_capacity", Value: 1},
	}, m.State())
	assert.Len(t, m.Ports(), 5)
}

func TestMetabolism_TickFormulas(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := New("m")
	set(t, m, WasteIn, 2)
	set(t, m, CO2In, 3)
	set(t, m, ATPIn, 50)
	dt := 0.5

	// --- Act ---
	m.Tick(dt)

	// --- Assert ---
	capacity := 1.0 // already at the ceiling
	processed := (2 + 3) * capacity * dt
	toxin := (2 - processed) * 0.1
	if toxin-0.05*dt < 0 {
		toxin = 0
	} else {
		toxin -= 0.05 * dt
	}
	ph := 7.4 - 3*0.01*dt
	ph += (7.4 - ph) * 0.1 * dt

	assert.InDelta(t, capacity, m.FilterCapacity, 1e-12)
	assert.InDelta(t, toxin, m.ToxinLevel, 1e-12)
	assert.InDelta(t, ph, m.PHLevel, 1e-12)

	out := component.Outputs(m)
	assert.InDelta(t, processed*0.3, out[RecycledOut], 1e-12)
	health := (1 - toxin/10) * (1 - 2*(7.4-ph))
	assert.InDelta(t, health, out[StatusOut], 1e-12)
}

func TestMetabolism_LowATPDegradesFilter(t *testing.T) {
	t.Parallel()

	m := New("m")
	set(t, m, ATPIn, 1)
	m.Tick(0.1)
	assert.InDelta(t, 0.9, m.FilterCapacity, 1e-12)
	m.Tick(0.1)
	assert.InDelta(t, 0.81, m.FilterCapacity, 1e-12)

	// Recovery is capped at 1.0.
	set(t, m, ATPIn, 10)
	for i := 0; i < 100; i++ {
		m.Tick(0.1)
	}
	assert.Equal(t, 1.0, m.FilterCapacity)
}

func TestMetabolism_ToxinNeverNegative(t *testing.T) {
	t.Parallel()

	m := New("m")
	set(t, m, ATPIn, 10)
	set(t, m, CO2In, 100)
	for i := 0; i < 20; i++ {
		m.Tick(0.1)
		require.GreaterOrEqual(t, m.ToxinLevel, 0.0)
	}
}

func TestMetabolism_StatusClamped(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		waste float64
		co2   float64
	}{
		{name: "idle", waste: 0, co2: 0},
		{name: "heavy waste", waste: 500, co2: 0},
		{name: "acidic", waste: 0, co2: 5000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New("m")
			set(t, m, WasteIn, tc.waste)
			set(t, m, CO2In, tc.co2)
			set(t, m, ATPIn, 10)
			for i := 0; i < 50; i++ {
				m.Tick(0.1)
				status := component.Outputs(m)[StatusOut]
				require.GreaterOrEqual(t, status, 0.0)
				require.LessOrEqual(t, status, 1.0)
			}
		})
	}
}

func TestMetabolism_InactiveIsNoop(t *testing.T) {
	t.Parallel()

	m := New("m")
	set(t, m, WasteIn, 3)
	m.SetActive(false)
	before := m.State()
	m.Tick(1)
	assert.Equal(t, before, m.State())
	assert.Equal(t, map[string]float64{RecycledOut: 0, StatusOut: 0}, component.Outputs(m))
}

func TestModule_Register(t *testing.T) {
	t.Parallel()

	reg := registry.New(&Module{})
	c, err := reg.New("Metabolism", "m1")
	require.NoError(t, err)
	assert.IsType(t, &Metabolism{}, c)
}

func TestMetabolism_HugeInputsKeepStateFinite(t *testing.T) {
	t.Parallel()

	m := New("m")
	set(t, m, WasteIn, 1e308)
	set(t, m, CO2In, 1e308)
	set(t, m, ATPIn, 1e308)

	for i := 0; i < 3; i++ {
		m.Tick(0.1)
	}

	for _, f := range m.State() {
		assert.False(t, math.IsInf(f.Value, 0) || math.IsNaN(f.Value), "%s = %v", f.Name, f.Value)
	}
	_, err := json.Marshal(history.Capture(0.3, []component.Component{m}))
	require.NoError(t, err)
}
