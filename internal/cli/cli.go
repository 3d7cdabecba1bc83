package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/wetware/internal/app"
)

// Version is the release reported by -version.
var Version = "0.1.0"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
//
// Precedence, lowest first: built-in defaults, WETWARE_* environment
// variables, flags given on the command line.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	defaults := app.DefaultConfig()
	flagSet := flag.NewFlagSet("wetware", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Wetware - A discrete-time simulator of synthetic organisms.

Usage:
  wetware [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to a .bio or .hcl graph file, or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph file or directory (shorthand).")
	formatFlag := flagSet.String("format", defaults.Format, "Graph format. Options: 'auto', 'dsl' or 'hcl'.")
	demoFlag := flagSet.Bool("demo", false, "Run the built-in demo organism.")
	versionFlag := flagSet.Bool("version", false, "Print the version and exit.")

	durationFlag := flagSet.Float64("duration", defaults.Duration, "Simulated seconds to run.")
	dtFlag := flagSet.Float64("dt", defaults.Dt, "Simulated seconds per tick.")
	realtimeFlag := flagSet.Bool("realtime", false, "Sleep dt of wall-clock time between ticks.")
	statusFlag := flagSet.Int("status-every", defaults.StatusEvery, "Print a status line every N ticks. 0 is disabled.")
	lenientFlag := flagSet.Bool("lenient", false, "Skip components of unknown type instead of failing.")
	continueFlag := flagSet.Bool("continue-on-error", false, "Apply the remaining statements after a failing one.")

	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health and status server. 0 is disabled.")

	csvFlag := flagSet.String("csv", "", "Write the recorded history to this CSV file.")
	sqliteFlag := flagSet.String("sqlite", "", "Save the recorded history to this SQLite database.")
	publishURLFlag := flagSet.String("publish-url", "", "Stream snapshots to this socket.io server.")
	publishNSFlag := flagSet.String("publish-namespace", "", "socket.io namespace for published snapshots.")
	otelFlag := flagSet.String("otel-endpoint", "", "OTLP HTTP endpoint for traces. Empty disables tracing.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *versionFlag {
		fmt.Fprintf(output, "wetware %s\n", Version)
		return nil, true, nil
	}

	cfg := defaults
	if err := app.ApplyEnv(&cfg); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	overrides := map[string]func(){
		"format":            func() { cfg.Format = strings.ToLower(*formatFlag) },
		"demo":              func() { cfg.Demo = *demoFlag },
		"duration":          func() { cfg.Duration = *durationFlag },
		"dt":                func() { cfg.Dt = *dtFlag },
		"realtime":          func() { cfg.Realtime = *realtimeFlag },
		"status-every":      func() { cfg.StatusEvery = *statusFlag },
		"lenient":           func() { cfg.Lenient = *lenientFlag },
		"continue-on-error": func() { cfg.ContinueOnError = *continueFlag },
		"log-format":        func() { cfg.LogFormat = strings.ToLower(*logFormatFlag) },
		"log-level":         func() { cfg.LogLevel = strings.ToLower(*logLevelFlag) },
		"healthcheck-port":  func() { cfg.HealthcheckPort = *healthPortFlag },
		"csv":               func() { cfg.CSVPath = *csvFlag },
		"sqlite":            func() { cfg.SQLitePath = *sqliteFlag },
		"publish-url":       func() { cfg.PublishURL = *publishURLFlag },
		"publish-namespace": func() { cfg.PublishNamespace = *publishNSFlag },
		"otel-endpoint":     func() { cfg.OTelEndpoint = *otelFlag },
	}
	flagSet.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	if *graphFlag != "" {
		cfg.GraphPath = *graphFlag
	} else if *gFlag != "" {
		cfg.GraphPath = *gFlag
	} else if flagSet.NArg() > 0 {
		cfg.GraphPath = flagSet.Arg(0)
	}
	slog.Debug("Graph path determined.", "path", cfg.GraphPath)

	if cfg.GraphPath == "" && !cfg.Demo {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
