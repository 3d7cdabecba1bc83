package config

import "context"

// Loader is the interface for a format-specific graph description loader.
type Loader interface {
	// Load reads the descriptions found at the given paths (files or
	// directories) and merges them, in path order, into one Graph.
	Load(ctx context.Context, paths ...string) (*Graph, error)
}
