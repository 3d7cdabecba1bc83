// Package export writes recorded simulation history to external sinks: a
// CSV stream for spreadsheets and plotting tools, and a SQLite database
// that keeps many runs side by side. Exported history is never read back
// into a running simulation.
package export
