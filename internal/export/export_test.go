package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wetware/internal/component"
	"github.com/vk/wetware/internal/history"
)

func sampleRecorder() *history.Recorder {
	rec := history.NewRecorder()
	for i, reserve := range []float64{1.5, 3} {
		rec.Append(history.Snapshot{
			Time: 0.1 * float64(i+1),
			Components: []history.ComponentSnapshot{{
				Name:    "power1",
				State:   component.State{{Name: "atp_reserve", Value: reserve}},
				Outputs: map[string]float64{"heat_out": 0.5, "atp_out": reserve * 2},
			}},
		})
	}
	return rec
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer

	// --- Act ---
	require.NoError(t, WriteCSV(&buf, sampleRecorder()))

	// --- Assert ---
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		CSVHeader,
		{"0.1", "power1", "state", "atp_reserve", "1.5"},
		{"0.1", "power1", "output", "atp_out", "3"},
		{"0.1", "power1", "output", "heat_out", "0.5"},
		{"0.2", "power1", "state", "atp_reserve", "3"},
		{"0.2", "power1", "output", "atp_out", "6"},
		{"0.2", "power1", "output", "heat_out", "0.5"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("csv rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_EmptyHistory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, history.NewRecorder()))
	assert.Equal(t, "time,component,kind,field,value\n", buf.String())
}

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	store := newStore(t)
	runID := NewRunID()
	snaps := sampleRecorder().All()

	// --- Act ---
	require.NoError(t, store.SaveRun(ctx, runID, snaps))
	loaded, ok, err := store.LoadRun(ctx, runID)

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(snaps, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("loaded run mismatch (-want +got):\n%s", diff)
	}

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, 2, runs[0].Ticks)
}

func TestSQLiteStore_SaveReplacesRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newStore(t)
	runID := NewRunID()
	snaps := sampleRecorder().All()

	require.NoError(t, store.SaveRun(ctx, runID, snaps))
	require.NoError(t, store.SaveRun(ctx, runID, snaps[:1]))

	loaded, ok, err := store.LoadRun(ctx, runID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, loaded, 1)
}

func TestSQLiteStore_MissingRun(t *testing.T) {
	t.Parallel()

	loaded, ok, err := newStore(t).LoadRun(context.Background(), NewRunID())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, loaded)
}

func TestSQLiteStore_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	uninit := NewSQLiteStore(filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, uninit.SaveRun(ctx, NewRunID(), nil))
	assert.NoError(t, uninit.Close())

	assert.Error(t, NewSQLiteStore("").Init(ctx))

	assert.Error(t, newStore(t).SaveRun(ctx, "not-a-uuid", nil))
}
