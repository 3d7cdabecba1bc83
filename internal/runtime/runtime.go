package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/vk/wetware/internal/component"
	"github.com/vk/wetware/internal/history"
	"github.com/vk/wetware/internal/port"
)

// Runtime owns a set of components, their connections, the clock and the
// history.
type Runtime struct {
	logger     *slog.Logger
	components []component.Component
	byName     map[string]component.Component
	edges      []edge
	time       float64
	history    *history.Recorder
	observers  []Observer
}

// Observer is called by Run after every tick with the zero-based step index
// and the snapshot just recorded. A non-nil error stops the run.
type Observer func(ctx context.Context, step int, snap history.Snapshot) error

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for registration and connection events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithObserver registers an Observer for Run.
func WithObserver(o Observer) Option {
	return func(r *Runtime) { r.observers = append(r.observers, o) }
}

// New creates an empty Runtime at time zero.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		logger:  slog.Default(),
		byName:  make(map[string]component.Component),
		history: history.NewRecorder(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a component. Names must be unique within the runtime.
func (r *Runtime) Register(c component.Component) error {
	if _, exists := r.byName[c.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateComponent, c.Name())
	}
	r.components = append(r.components, c)
	r.byName[c.Name()] = c
	r.logger.Debug("Component registered.", "component", component.Describe(c))
	return nil
}

// Component returns the named component.
func (r *Runtime) Component(name string) (component.Component, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Components returns the components in registration order.
func (r *Runtime) Components() []component.Component {
	out := make([]component.Component, len(r.components))
	copy(out, r.components)
	return out
}

// Connections returns the connections in registration order.
func (r *Runtime) Connections() []Connection {
	out := make([]Connection, len(r.edges))
	for i, e := range r.edges {
		out[i] = e.conn
	}
	return out
}

// Time returns the current simulation time.
func (r *Runtime) Time() float64 { return r.time }

// Observe registers an Observer for Run on an existing Runtime.
func (r *Runtime) Observe(o Observer) {
	r.observers = append(r.observers, o)
}

// History returns the snapshot recorder. Callers must treat it as read-only.
func (r *Runtime) History() *history.Recorder { return r.history }

func (r *Runtime) lookup(compName, portName string) (*port.Port, error) {
	c, ok := r.byName[compName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, compName)
	}
	p, ok := c.Port(portName)
	if !ok {
		return nil, fmt.Errorf("%w: %q on component %q", ErrUnknownPort, portName, compName)
	}
	return p, nil
}

// Connect adds a connection from srcComp.srcPort to tgtComp.tgtPort. It
// fails without side effects if either end is missing or the ports are not
// compatible. Duplicate connections are allowed.
func (r *Runtime) Connect(srcComp, srcPort, tgtComp, tgtPort string) error {
	conn := Connection{
		SourceComponent: srcComp,
		SourcePort:      srcPort,
		TargetComponent: tgtComp,
		TargetPort:      tgtPort,
	}

	src, err := r.lookup(srcComp, srcPort)
	if err != nil {
		return fmt.Errorf("connect %s: %w", conn, err)
	}
	dst, err := r.lookup(tgtComp, tgtPort)
	if err != nil {
		return fmt.Errorf("connect %s: %w", conn, err)
	}
	if !port.Compatible(src, dst) {
		return fmt.Errorf("connect %s: %w: %s vs %s", conn, ErrIncompatiblePorts, src, dst)
	}
	if src.Direction() != port.Out {
		// Compatible pairs face opposite ways; normalise so data flows out->in.
		src, dst = dst, src
		conn = Connection{
			SourceComponent: tgtComp,
			SourcePort:      tgtPort,
			TargetComponent: srcComp,
			TargetPort:      srcPort,
		}
	}

	r.edges = append(r.edges, edge{conn: conn, src: src, dst: dst})
	r.logger.Debug("Ports connected.", "connection", conn.String(), "kind", src.Kind().String())
	return nil
}

// SetInput assigns an external value directly to a port, bypassing
// propagation. It is used for environmental inputs with no producer.
func (r *Runtime) SetInput(compName, portName string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("set %s.%s: %w: %v", compName, portName, ErrNonFiniteValue, v)
	}
	p, err := r.lookup(compName, portName)
	if err != nil {
		return fmt.Errorf("set %s.%s: %w", compName, portName, err)
	}
	p.Set(v)
	return nil
}

func validateStep(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt=%v", ErrInvalidStep, dt)
	}
	return nil
}

// Tick runs one propagate, update, record cycle.
func (r *Runtime) Tick(dt float64) error {
	if err := validateStep(dt); err != nil {
		return err
	}

	for _, e := range r.edges {
		e.propagate()
	}
	for _, c := range r.components {
		c.Tick(dt)
	}

	r.time += dt
	r.history.Append(history.Capture(r.time, r.components))
	return nil
}

// Steps returns how many ticks Run performs for the given duration:
// floor(duration/dt). The remainder is dropped.
func Steps(duration, dt float64) (int, error) {
	if err := validateStep(dt); err != nil {
		return 0, err
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, fmt.Errorf("%w: duration=%v", ErrInvalidStep, duration)
	}
	return int(math.Floor(duration / dt)), nil
}

// Run ticks floor(duration/dt) times, notifying observers after each tick.
// The context is checked between ticks only; stopping there loses no
// partial state.
func (r *Runtime) Run(ctx context.Context, duration, dt float64) error {
	steps, err := Steps(duration, dt)
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Tick(dt); err != nil {
			return err
		}
		if len(r.observers) == 0 {
			continue
		}
		snap, _ := r.history.Latest()
		for _, o := range r.observers {
			if err := o(ctx, i, snap); err != nil {
				return err
			}
		}
	}
	return nil
}
