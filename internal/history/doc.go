// Package history records the append-only time series of runtime snapshots.
//
// A Recorder is owned by exactly one runtime, which appends one Snapshot per
// tick. Consumers such as the status reporter, exporters or the HTTP status
// endpoint only read from it. Reads are safe from other goroutines.
package history
