package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/wetware/internal/config"
	"github.com/vk/wetware/internal/ctxlog"
	"github.com/vk/wetware/internal/fsutil"
	"github.com/vk/wetware/internal/portref"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every HCL graph file at the given paths and translates the
// blocks into one config.Graph.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	graph := &config.Graph{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		g, err := translate(hclFile.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		graph.Merge(g)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "statements", len(graph.Statements))
	return graph, nil
}

// Parse translates HCL source held in memory. filename labels diagnostics.
func Parse(filename string, src []byte) (*config.Graph, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", filename, diags)
	}
	return translate(hclFile.Body)
}

// translate converts the top-level blocks of a body into statements.
func translate(body hcl.Body) (*config.Graph, error) {
	content, diags := body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	g := &config.Graph{}
	for _, block := range content.Blocks {
		stmt, err := translateBlock(block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", block.DefRange, err)
		}
		stmt.Source = config.Source{File: block.DefRange.Filename, Line: block.DefRange.Start.Line}
		g.Append(stmt)
	}
	return g, nil
}

func translateBlock(block *hcl.Block) (config.Statement, error) {
	switch block.Type {
	case "component":
		var body componentBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return config.Statement{}, diags
		}
		if err := portref.CheckName(block.Labels[1]); err != nil {
			return config.Statement{}, err
		}
		return config.Component(block.Labels[1], block.Labels[0]), nil

	case "connect":
		var body connectBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return config.Statement{}, diags
		}
		from, err := portref.Parse(body.From)
		if err != nil {
			return config.Statement{}, err
		}
		to, err := portref.Parse(body.To)
		if err != nil {
			return config.Statement{}, err
		}
		return config.Connect(from, to), nil

	case "set":
		target, err := portref.Parse(block.Labels[0])
		if err != nil {
			return config.Statement{}, err
		}
		var body setBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return config.Statement{}, diags
		}
		v, err := evalNumber(body.Value, nil)
		if err != nil {
			return config.Statement{}, fmt.Errorf("set %s: %w", target, err)
		}
		return config.Set(target, v), nil

	default:
		return config.Statement{}, fmt.Errorf("unsupported block type %q", block.Type)
	}
}
