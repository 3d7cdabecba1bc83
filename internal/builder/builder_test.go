package builder

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wetware/internal/config"
	"github.com/vk/wetware/internal/ctxlog"
	"github.com/vk/wetware/internal/dsl"
	"github.com/vk/wetware/internal/registry"
	"github.com/vk/wetware/internal/runtime"
	"github.com/vk/wetware/modules/compute"
	"github.com/vk/wetware/modules/metabolism"
	"github.com/vk/wetware/modules/power"
)

const organism = `
// organism definition
COMPONENT power1 FROM power
COMPONENT metabolism1 FROM metabolism
COMPONENT compute1 FROM compute

CONNECT power1.atp_out TO metabolism1.atp_in
CONNECT power1.atp_out TO compute1.atp_in
CONNECT power1.co2_out TO metabolism1.co2_in
CONNECT metabolism1.status_out TO compute1.status_in

SET power1.glucose_in = 10
SET power1.oxygen_in = 60
`

func newRegistry() *registry.Registry {
	return registry.New(&power.Module{}, &metabolism.Module{}, &compute.Module{})
}

func testContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func build(t *testing.T, src string, opts Options) (*runtime.Runtime, string, error) {
	t.Helper()
	g, err := dsl.Parse(src)
	require.NoError(t, err)
	var logs bytes.Buffer
	rt, err := Build(testContext(&logs), g, newRegistry(), opts)
	return rt, logs.String(), err
}

func TestBuild_SetOnlyTouchesTargetPort(t *testing.T) {
	t.Parallel()

	// --- Act ---
	rt, _, err := build(t, "COMPONENT p FROM power\nSET p.glucose_in = 10", Options{})

	// --- Assert ---
	require.NoError(t, err)
	p, ok := rt.Component("p")
	require.True(t, ok)
	for _, pt := range p.Ports() {
		if pt.Name() == power.GlucoseIn {
			assert.Equal(t, 10.0, pt.Value())
			continue
		}
		assert.Equal(t, 0.0, pt.Value(), "port %s must stay untouched", pt.Name())
	}
}

func TestBuild_Organism(t *testing.T) {
	t.Parallel()

	rt, logs, err := build(t, organism, Options{})
	require.NoError(t, err)

	assert.Len(t, rt.Components(), 3)
	conns := rt.Connections()
	require.Len(t, conns, 4)
	assert.Equal(t, "power1.atp_out -> metabolism1.atp_in", conns[0].String())
	assert.Equal(t, "metabolism1.status_out -> compute1.status_in", conns[3].String())
	assert.Contains(t, logs, "Graph construction successful")
}

func TestBuild_EndToEndScenario(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	rt, _, err := build(t, organism, Options{})
	require.NoError(t, err)

	// --- Act ---
	require.NoError(t, rt.Run(context.Background(), 5.0, 0.1))

	// --- Assert ---
	hist := rt.History()
	require.Equal(t, 50, hist.Len())
	last, ok := hist.Latest()
	require.True(t, ok)
	assert.InDelta(t, 5.0, last.Time, 1e-9)

	for i, s := range hist.All() {
		m, ok := s.Component("metabolism1")
		require.True(t, ok)
		status := m.Outputs[metabolism.StatusOut]
		require.GreaterOrEqual(t, status, 0.0, "step %d", i)
		require.LessOrEqual(t, status, 1.0, "step %d", i)
	}

	// The power module is supplied, so its reserve must grow over the run.
	atp := hist.Series("power1", "atp_reserve")
	require.Len(t, atp, 50)
	assert.Greater(t, atp[len(atp)-1].Value, 100.0)
}

func TestBuild_UnknownComponentType(t *testing.T) {
	t.Parallel()

	src := "COMPONENT liver FROM hepatic\nCOMPONENT p FROM power"

	t.Run("strict", func(t *testing.T) {
		rt, _, err := build(t, src, Options{})
		require.ErrorIs(t, err, registry.ErrUnknownComponentType)

		var stmtErr *StatementError
		require.True(t, errors.As(err, &stmtErr))
		assert.Equal(t, 1, stmtErr.Statement.Source.Line)
		assert.Empty(t, rt.Components(), "strict mode stops at the failing statement")
	})

	t.Run("lenient", func(t *testing.T) {
		rt, logs, err := build(t, src, Options{Lenient: true})
		require.NoError(t, err)
		assert.Len(t, rt.Components(), 1)
		assert.Contains(t, logs, "Unknown component type")
	})
}

func TestBuild_ConnectErrorsPropagate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		line    string
		wantErr error
	}{
		{name: "unknown component", line: "CONNECT p.atp_out TO ghost.atp_in", wantErr: runtime.ErrUnknownComponent},
		{name: "unknown port", line: "CONNECT p.atp_out TO m.nope", wantErr: runtime.ErrUnknownPort},
		{name: "incompatible", line: "CONNECT p.atp_out TO m.co2_in", wantErr: runtime.ErrIncompatiblePorts},
		{name: "set unknown port", line: "SET p.nope = 1", wantErr: runtime.ErrUnknownPort},
		{name: "duplicate component", line: "COMPONENT p FROM compute", wantErr: runtime.ErrDuplicateComponent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rt, _, err := build(t, "COMPONENT p FROM power\nCOMPONENT m FROM metabolism\n"+tc.line, Options{})
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, rt.Connections())
		})
	}
}

func TestBuild_ContinueOnError(t *testing.T) {
	t.Parallel()

	src := `
COMPONENT p FROM power
COMPONENT m FROM metabolism
CONNECT p.atp_out TO m.co2_in
CONNECT ghost.x TO m.atp_in
CONNECT p.co2_out TO m.co2_in
`
	rt, _, err := build(t, src, Options{ContinueOnError: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, runtime.ErrIncompatiblePorts)
	assert.ErrorIs(t, err, runtime.ErrUnknownComponent)
	require.Len(t, rt.Connections(), 1, "later valid statements are still applied")
}

func TestBuild_FanInWarning(t *testing.T) {
	t.Parallel()

	src := `
COMPONENT p1 FROM power
COMPONENT p2 FROM power
COMPONENT m FROM metabolism
CONNECT p1.atp_out TO m.atp_in
CONNECT p2.atp_out TO m.atp_in
`
	_, logs, err := build(t, src, Options{})
	require.NoError(t, err)
	assert.Contains(t, logs, "the last one wins")
	assert.Contains(t, logs, "input=m.atp_in")
}

func TestApply_CancelledContext(t *testing.T) {
	t.Parallel()

	g := &config.Graph{}
	g.Append(config.Component("p", "power"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rt := runtime.New()
	err := Apply(ctx, rt, g, newRegistry(), Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rt.Components())
}
