package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vk/wetware/internal/builder"
	"github.com/vk/wetware/internal/ctxlog"
	"github.com/vk/wetware/internal/export"
	"github.com/vk/wetware/internal/history"
	"github.com/vk/wetware/internal/publish"
	"github.com/vk/wetware/internal/report"
	"github.com/vk/wetware/internal/runtime"
	"github.com/vk/wetware/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run builds the organism from the loaded graph, simulates it for the
// configured duration and exports the recorded history.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	shutdown, err := telemetry.Setup(ctx, telemetry.ServiceName, a.config.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if serr := shutdown(context.WithoutCancel(ctx)); serr != nil {
			a.logger.Warn("Tracer shutdown failed.", "error", serr)
		}
	}()

	ctx, span := telemetry.Tracer().Start(ctx, "wetware.run")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	rt, err := a.build(ctx)
	if err != nil {
		return err
	}
	a.runtime = rt

	var pub *publish.Publisher
	if a.config.PublishURL != "" {
		pub, err = publish.Connect(ctx, a.config.PublishURL, publish.Options{Namespace: a.config.PublishNamespace})
		if err != nil {
			return fmt.Errorf("failed to connect snapshot publisher: %w", err)
		}
		defer pub.Close()
	}

	if err := a.simulate(ctx, rt, pub); err != nil {
		return err
	}

	if err := a.export(ctx, rt.History()); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) build(ctx context.Context) (*runtime.Runtime, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "wetware.build",
		trace.WithAttributes(attribute.Int("statements", len(a.graph.Statements))))
	defer span.End()

	a.logger.Debug("Building organism from graph...")
	rt, err := builder.Build(ctx, a.graph, a.registry, builder.Options{
		Lenient:         a.config.Lenient,
		ContinueOnError: a.config.ContinueOnError,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build organism: %w", err)
	}

	a.logger.Info("Organism built.", "components", len(rt.Components()), "connections", len(rt.Connections()))
	for _, c := range rt.Connections() {
		a.logger.Debug("Topology", "connection", c.String())
	}
	return rt, nil
}

// simulate runs rt for the configured duration, reporting after each tick.
func (a *App) simulate(ctx context.Context, rt *runtime.Runtime, pub *publish.Publisher) error {
	cfg := a.config
	steps, err := runtime.Steps(cfg.Duration, cfg.Dt)
	if err != nil {
		return err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "wetware.simulate", trace.WithAttributes(
		attribute.Float64("duration", cfg.Duration),
		attribute.Float64("dt", cfg.Dt),
		attribute.Int("steps", steps),
	))
	defer span.End()

	if len(rt.Components()) == 0 {
		a.logger.Warn("No components found in graph, simulation has nothing to update.")
	}

	a.logger.Info("🚀 Starting simulation...", "duration", cfg.Duration, "dt", cfg.Dt, "steps", steps)
	report.Banner(a.outW, "[Runtime] simulating %.1fs in %d steps", cfg.Duration, steps)

	rt.Observe(a.observeTick(span, pub))
	if err := rt.Run(ctx, cfg.Duration, cfg.Dt); err != nil {
		return err
	}

	report.Banner(a.outW, "[Runtime] simulation complete: %.1fs", rt.Time())
	a.logger.Info("🏁 Simulation finished.", "time", rt.Time(), "snapshots", rt.History().Len())
	return nil
}

// observeTick returns the per-tick hook: it serves the snapshot on /status,
// publishes it, prints the status every StatusEvery ticks and paces the run
// in realtime mode.
func (a *App) observeTick(span trace.Span, pub *publish.Publisher) runtime.Observer {
	cfg := a.config
	pace := time.Duration(cfg.Dt * float64(time.Second))

	return func(ctx context.Context, step int, snap history.Snapshot) error {
		a.latest.Store(&snap)

		if pub != nil {
			if err := pub.Publish(snap); err != nil {
				a.logger.Warn("Snapshot publish failed.", "tick", step, "error", err)
			}
		}

		if cfg.StatusEvery > 0 && step%cfg.StatusEvery == 0 {
			span.AddEvent("status", trace.WithAttributes(attribute.Float64("time", snap.Time)))
			if err := report.Status(a.outW, snap); err != nil {
				a.logger.Warn("Status report failed.", "error", err)
			}
		}

		if cfg.Realtime {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pace):
			}
		}
		return nil
	}
}

// export writes the history to the configured sinks.
func (a *App) export(ctx context.Context, rec *history.Recorder) error {
	if a.config.CSVPath != "" {
		f, err := os.Create(a.config.CSVPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		if err := export.WriteCSV(f, rec); err != nil {
			f.Close()
			return fmt.Errorf("failed to write CSV history: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close CSV file: %w", err)
		}
		a.logger.Info("History written to CSV.", "path", a.config.CSVPath, "snapshots", rec.Len())
	}

	if a.config.SQLitePath != "" {
		store := export.NewSQLiteStore(a.config.SQLitePath)
		if err := store.Init(ctx); err != nil {
			return fmt.Errorf("failed to open SQLite store: %w", err)
		}
		defer store.Close()

		runID := export.NewRunID()
		if err := store.SaveRun(ctx, runID, rec.All()); err != nil {
			return fmt.Errorf("failed to save run to SQLite: %w", err)
		}
		a.runID = runID
		a.logger.Info("History saved to SQLite.", "path", a.config.SQLitePath, "run_id", runID)
	}
	return nil
}
