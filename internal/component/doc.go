// Package component defines the contract shared by every functional module
// of the organism graph.
//
// A component owns a fixed set of ports, fixed at construction, and an
// internal state that only its own Tick may change. The runtime is the only
// other party allowed to touch it, and only by writing IN port values during
// signal propagation.
//
// Concrete variants embed Base for the bookkeeping and implement Tick and
// State themselves. New variants are added as new types, registered through
// the registry package, rather than by extending existing ones.
package component
