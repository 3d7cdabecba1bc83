// Package testutil provides helpers shared by tests that drive the whole
// application: a concurrency-safe log buffer, graph fixture files and an
// in-process harness.
package testutil
