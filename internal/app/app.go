package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/wetware/internal/config"
	"github.com/vk/wetware/internal/ctxlog"
	"github.com/vk/wetware/internal/history"
	"github.com/vk/wetware/internal/registry"
	"github.com/vk/wetware/internal/runtime"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	graph    *config.Graph

	runtime    *runtime.Runtime
	latest     atomic.Pointer[history.Snapshot]
	httpServer *http.Server
	runID      string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// A nil loader selects one from appConfig. Failing to load the graph is a
// fatal startup error and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	graph, err := loadGraph(ctx, appConfig, loader)
	if err != nil {
		panic(fmt.Errorf("failed to load graph: %w", err))
	}
	logger.Debug("Graph loaded.", "statements", len(graph.Statements))

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All component modules registered.", "count", len(modules), "types", reg.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   appConfig,
		graph:    graph,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Graph returns the loaded graph description.
func (a *App) Graph() *config.Graph {
	return a.graph
}

// Runtime returns the runtime built by Run, or nil before Run.
func (a *App) Runtime() *runtime.Runtime {
	return a.runtime
}

// RunID returns the identifier the last run was stored under in SQLite, or
// an empty string when SQLite export is disabled.
func (a *App) RunID() string {
	return a.runID
}

// Latest returns the most recent snapshot of the current run.
func (a *App) Latest() (history.Snapshot, bool) {
	snap := a.latest.Load()
	if snap == nil {
		return history.Snapshot{}, false
	}
	return *snap, true
}
