package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/vk/wetware/internal/history"
)

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"time", "component", "kind", "field", "value"}

// Row kinds in the CSV output.
const (
	KindState  = "state"
	KindOutput = "output"
)

// Snapshots is satisfied by *history.Recorder.
type Snapshots interface {
	All() []history.Snapshot
}

// WriteCSV writes one row per state field and output port of every
// component in every snapshot. State fields keep their export order;
// outputs are sorted by port name.
func WriteCSV(w io.Writer, src Snapshots) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, snap := range src.All() {
		t := formatFloat(snap.Time)
		for _, c := range snap.Components {
			for _, f := range c.State {
				if err := cw.Write([]string{t, c.Name, KindState, f.Name, formatFloat(f.Value)}); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
			}
			names := make([]string, 0, len(c.Outputs))
			for name := range c.Outputs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if err := cw.Write([]string{t, c.Name, KindOutput, name, formatFloat(c.Outputs[name])}); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
