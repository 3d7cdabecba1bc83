// Package runtime orchestrates an organism graph: it owns the registered
// components, the connections between their ports, the simulation clock and
// the snapshot history.
//
// # Tick semantics
//
// One Tick(dt) runs three phases to completion:
//
//  1. Propagate: every connection, in registration order, copies its source
//     OUT value into its target IN port. The values copied are the ones left
//     by the previous tick (zero before the first), so data crosses exactly
//     one edge per tick. When several connections feed one input, the last
//     registered one wins.
//  2. Update: every component, in registration order, runs its own Tick.
//  3. Record: the clock advances by dt and a snapshot of every component is
//     appended to the history.
//
// A Runtime is not safe for concurrent mutation; independent Runtimes share
// nothing and may run in parallel. Its history may be read concurrently.
package runtime
