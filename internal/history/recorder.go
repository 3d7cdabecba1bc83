package history

import "sync"

// Point is one sample of a time series.
type Point struct {
	Time  float64
	Value float64
}

// Recorder is an append-only list of snapshots.
type Recorder struct {
	mu        sync.RWMutex
	snapshots []Snapshot
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds a snapshot at the end of the history.
func (r *Recorder) Append(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

// Len returns the number of recorded snapshots.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.snapshots)
}

// At returns the i-th snapshot. Negative indexes count from the end.
func (r *Recorder) At(i int) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 {
		i += len(r.snapshots)
	}
	if i < 0 || i >= len(r.snapshots) {
		return Snapshot{}, false
	}
	return r.snapshots[i], true
}

// Latest returns the most recent snapshot.
func (r *Recorder) Latest() (Snapshot, bool) {
	return r.At(-1)
}

// All returns a copy of the snapshot list. Snapshots themselves are never
// mutated after Append, so they are shared.
func (r *Recorder) All() []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Snapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

// Series extracts the time series of one state field or output port of a
// component. Snapshots where the field is absent are skipped.
func (r *Recorder) Series(componentName, field string) []Point {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var points []Point
	for _, s := range r.snapshots {
		c, ok := s.Component(componentName)
		if !ok {
			continue
		}
		if v, ok := c.Value(field); ok {
			points = append(points, Point{Time: s.Time, Value: v})
		}
	}
	return points
}
