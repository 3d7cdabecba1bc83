package app

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/wetware/internal/config"
	"github.com/vk/wetware/internal/dsl"
	"github.com/vk/wetware/internal/hcl"
)

//go:embed demo.bio
var demoGraph string

// DemoGraph returns the source of the built-in demo organism.
func DemoGraph() string { return demoGraph }

// LoaderFor picks the graph loader matching cfg.Format. In auto mode a
// path ending in .hcl selects HCL and anything else the graph language.
func LoaderFor(cfg *Config) config.Loader {
	switch cfg.Format {
	case FormatHCL:
		return hcl.NewLoader()
	case FormatDSL:
		return dsl.NewLoader()
	}
	if strings.EqualFold(filepath.Ext(cfg.GraphPath), hcl.Extension) {
		return hcl.NewLoader()
	}
	return dsl.NewLoader()
}

// loadGraph reads the graph the App will simulate.
func loadGraph(ctx context.Context, cfg *Config, loader config.Loader) (*config.Graph, error) {
	if cfg.Demo {
		g, err := dsl.Parse(demoGraph)
		if err != nil {
			return nil, fmt.Errorf("failed to parse demo graph: %w", err)
		}
		return g, nil
	}
	if loader == nil {
		loader = LoaderFor(cfg)
	}
	return loader.Load(ctx, cfg.GraphPath)
}
