// Package builder interprets a format-agnostic config.Graph and applies it,
// statement by statement, to a runtime.Runtime.
//
// COMPONENT statements instantiate variants through the registry, CONNECT
// statements go through Runtime.Connect and inherit its failure modes, and
// SET statements assign external input values. Statements are applied in
// order, so a statement may only refer to components declared above it.
package builder
