// Package report renders the advisory console status of a simulation.
// The output is for humans only; the history recorder is the authoritative
// record of a run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/wetware/internal/history"
)

// DefaultFields is how many leading state fields each component line shows.
const DefaultFields = 3

// Status writes the status block for one snapshot:
//
//	[T=1.0s]
//	  power1: efficiency=0.85, atp_reserve=12.40, temperature=37.10
func Status(w io.Writer, snap history.Snapshot) error {
	return StatusN(w, snap, DefaultFields)
}

// StatusN is Status with an explicit per-component field limit. Derived
// fields are skipped and do not count towards the limit.
func StatusN(w io.Writer, snap history.Snapshot, fields int) error {
	if _, err := fmt.Fprintf(w, "\n[T=%.1fs]\n", snap.Time); err != nil {
		return err
	}
	for _, c := range snap.Components {
		parts := make([]string, 0, len(c.State))
		for _, f := range c.State {
			if fields >= 0 && len(parts) == fields {
				break
			}
			if f.Derived {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%.2f", f.Name, f.Value))
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n", c.Name, strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Banner writes the line framing the start or end of a run.
func Banner(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintln(w, strings.Repeat("=", 60)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}
