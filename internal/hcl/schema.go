package hcl

import "github.com/hashicorp/hcl/v2"

// Extension is the file extension of HCL graph files.
const Extension = ".hcl"

// fileSchema lists the top-level blocks of a graph file. Decoding with a
// schema, rather than into a struct, keeps the blocks in source order.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "component", LabelNames: []string{"type", "name"}},
		{Type: "connect"},
		{Type: "set", LabelNames: []string{"target"}},
	},
}

// componentBlock is the body of a `component` block. It takes no attributes.
type componentBlock struct{}

// connectBlock is the body of a `connect` block.
type connectBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// setBlock is the body of a `set` block.
type setBlock struct {
	Value hcl.Expression `hcl:"value"`
}
