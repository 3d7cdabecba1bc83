package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vk/wetware/internal/history"

	_ "modernc.org/sqlite"
)

// RunInfo describes one stored run.
type RunInfo struct {
	ID        string
	CreatedAt time.Time
	Ticks     int
}

// SQLiteStore persists the history of simulation runs, one row per tick.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns a store backed by the database file at path. Call
// Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// NewRunID returns a fresh identifier for SaveRun.
func NewRunID() string {
	return uuid.NewString()
}

// Init opens the database and creates the tables if needed.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// SaveRun stores snaps under runID. Saving a run ID again replaces its
// previous ticks.
func (s *SQLiteStore) SaveRun(ctx context.Context, runID string, snaps []history.Snapshot) error {
	if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("invalid run id %q: %w", runID, err)
	}
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, ticks)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			ticks = excluded.ticks
	`, runID, time.Now().UTC().Format(time.RFC3339Nano), len(snaps))
	if err != nil {
		return fmt.Errorf("save run %s: %w", runID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("clear run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshots (run_id, tick, sim_time, payload)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, snap := range snaps {
		payload, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, i, snap.Time, payload); err != nil {
			return fmt.Errorf("save snapshot %d of run %s: %w", i, runID, err)
		}
	}

	return tx.Commit()
}

// LoadRun returns the snapshots of runID in tick order. The boolean is false
// when the run does not exist.
func (s *SQLiteStore) LoadRun(ctx context.Context, runID string) ([]history.Snapshot, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var ticks int
	err = db.QueryRowContext(ctx, `SELECT ticks FROM runs WHERE id = ?`, runID).Scan(&ticks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `SELECT payload FROM snapshots WHERE run_id = ? ORDER BY tick`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	snaps := make([]history.Snapshot, 0, ticks)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, false, err
		}
		var snap history.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return nil, false, fmt.Errorf("decode snapshot of run %s: %w", runID, err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return snaps, true, nil
}

// Runs lists stored runs, newest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]RunInfo, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, created_at, ticks FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			created string
		)
		if err := rows.Scan(&info.ID, &created, &info.Ticks); err != nil {
			return nil, err
		}
		info.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of run %s: %w", info.ID, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Close releases the database. It is safe to call on an uninitialized store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			ticks INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			sim_time REAL NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`)
	return err
}
