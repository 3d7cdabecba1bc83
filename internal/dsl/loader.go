package dsl

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/wetware/internal/config"
	"github.com/vk/wetware/internal/ctxlog"
	"github.com/vk/wetware/internal/fsutil"
)

// Loader is the graph-language implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new graph-language loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every graph file at the given paths. Directories are searched
// recursively for files with the .bio extension, in lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Graph language loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}

	graph := &config.Graph{}
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open graph file %s: %w", file, err)
		}
		g, err := ParseReader(file, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		graph.Merge(g)
		logger.Debug("Parsed graph file.", "file", file, "statements", len(g.Statements))
	}

	logger.Debug("Graph language loading complete.", "files", len(files), "statements", len(graph.Statements))
	return graph, nil
}
