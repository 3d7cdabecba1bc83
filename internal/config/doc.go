// Package config defines the format-agnostic model of an organism graph
// description, along with the Loader interface that turns source files into
// that model.
//
// The `config.Graph` is the single input of the builder package. Concrete
// loaders for the line-oriented graph language and for HCL live in the dsl
// and hcl packages.
package config
