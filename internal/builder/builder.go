package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/wetware/internal/config"
	"github.com/vk/wetware/internal/ctxlog"
	"github.com/vk/wetware/internal/registry"
	"github.com/vk/wetware/internal/runtime"
)

// Options tunes how statement failures are handled.
type Options struct {
	// Lenient skips COMPONENT statements with an unknown type, logging a
	// warning, instead of failing with registry.ErrUnknownComponentType.
	Lenient bool
	// ContinueOnError applies the remaining statements after a failure and
	// reports every failure joined into one error.
	ContinueOnError bool
}

// StatementError ties a failure to the statement that caused it.
type StatementError struct {
	Statement config.Statement
	Err       error
}

// Error implements the error interface for StatementError.
func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Statement.Source, e.Statement, e.Err)
}

// Unwrap exposes the underlying runtime or registry error.
func (e *StatementError) Unwrap() error { return e.Err }

// Build creates a new Runtime and applies g to it. The Runtime is returned
// even on error and holds every statement applied before the failure.
func Build(ctx context.Context, g *config.Graph, reg *registry.Registry, opts Options) (*runtime.Runtime, error) {
	rt := runtime.New(runtime.WithLogger(ctxlog.FromContext(ctx)))
	return rt, Apply(ctx, rt, g, reg, opts)
}

// Apply interprets the statements of g against an existing Runtime.
func Apply(ctx context.Context, rt *runtime.Runtime, g *config.Graph, reg *registry.Registry, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "statements", len(g.Statements))

	var errs []error
	for _, stmt := range g.Statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := applyStatement(ctx, rt, reg, stmt, opts)
		if err == nil {
			continue
		}
		stmtErr := &StatementError{Statement: stmt, Err: err}
		if !opts.ContinueOnError {
			return stmtErr
		}
		logger.Warn("Build: Statement failed, continuing.", "source", stmt.Source.String(), "error", err)
		errs = append(errs, stmtErr)
	}

	warnFanIn(ctx, rt)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info("Build: Graph construction successful.",
		"components", len(rt.Components()),
		"connections", len(rt.Connections()),
	)
	return nil
}

func applyStatement(ctx context.Context, rt *runtime.Runtime, reg *registry.Registry, stmt config.Statement, opts Options) error {
	logger := ctxlog.FromContext(ctx)

	switch stmt.Kind {
	case config.KindComponent:
		c, err := reg.New(stmt.Type, stmt.Name)
		if errors.Is(err, registry.ErrUnknownComponentType) && opts.Lenient {
			logger.Warn("Build: Unknown component type, statement skipped.", "source", stmt.Source.String(), "type", stmt.Type, "name", stmt.Name)
			return nil
		}
		if err != nil {
			return err
		}
		return rt.Register(c)

	case config.KindConnect:
		return rt.Connect(stmt.From.Component, stmt.From.Port, stmt.To.Component, stmt.To.Port)

	case config.KindSet:
		return rt.SetInput(stmt.Target.Component, stmt.Target.Port, stmt.Value)

	default:
		return fmt.Errorf("unsupported statement kind %s", stmt.Kind)
	}
}

// warnFanIn logs every input port fed by more than one connection. Such
// inputs keep the value of the last registered connection each tick.
func warnFanIn(ctx context.Context, rt *runtime.Runtime) {
	logger := ctxlog.FromContext(ctx)
	feeds := make(map[string]int)
	for _, c := range rt.Connections() {
		feeds[c.To().String()]++
	}
	for target, n := range feeds {
		if n > 1 {
			logger.Warn("Build: Input fed by several connections, the last one wins.", "input", target, "connections", n)
		}
	}
}
