// Package sqlite persists simulation runs and their per-tick detections.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/solver"
)

// RunMeta describes a run when it starts.
type RunMeta struct {
	SceneName string
	// Config is stored verbatim; typically the marshalled SimConfig.
	Config json.RawMessage
}

// Run is a stored run with aggregate counts.
type Run struct {
	RunID      string
	SceneName  string
	Config     json.RawMessage
	StartedAt  int64 // unix nanos
	Ticks      int
	Detections int
}

// StoredDetection is a detection with the tick it was produced on.
type StoredDetection struct {
	RunID   string
	Tick    int
	SimTime float64
	solver.Detection
}

// Store is the detection run log.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
	"PRAGMA foreign_keys=ON",
}

// Open opens or creates the database at path and brings its schema up to
// date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// StartRun records a new run and returns its ID.
func (s *Store) StartRun(ctx context.Context, meta RunMeta) (string, error) {
	runID := uuid.New().String()

	var cfg interface{}
	if len(meta.Config) > 0 {
		cfg = string(meta.Config)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sim_runs (run_id, scene_name, config_json, started_at) VALUES (?, ?, ?, ?)`,
		runID, meta.SceneName, cfg, s.now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// RecordDetections stores one tick's detections in a single transaction.
func (s *Store) RecordDetections(ctx context.Context, runID string, tick int, simTime float64, ds []solver.Detection) error {
	if len(ds) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sim_detections (
			run_id, tick, sim_time_s, transmitter, receiver, x, y, z, path_length_m
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, d := range ds {
		if _, err := stmt.ExecContext(ctx,
			runID, tick, simTime, d.Transmitter, d.Receiver,
			d.Point.X, d.Point.Y, d.Point.Z, d.PathLength,
		); err != nil {
			return fmt.Errorf("insert detection: %w", err)
		}
	}

	return tx.Commit()
}

// Detections returns every detection of a run in tick order, then in the
// order they were recorded.
func (s *Store) Detections(ctx context.Context, runID string) ([]StoredDetection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, tick, sim_time_s, transmitter, receiver, x, y, z, path_length_m
		FROM sim_detections
		WHERE run_id = ?
		ORDER BY tick, detection_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	defer rows.Close()

	var out []StoredDetection
	for rows.Next() {
		var d StoredDetection
		var p geom.Point
		if err := rows.Scan(&d.RunID, &d.Tick, &d.SimTime, &d.Transmitter, &d.Receiver,
			&p.X, &p.Y, &p.Z, &d.PathLength); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		d.Point = p
		out = append(out, d)
	}
	return out, rows.Err()
}

// Runs returns all runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.scene_name, r.config_json, r.started_at,
		       COUNT(DISTINCT d.tick), COUNT(d.detection_id)
		FROM sim_runs r
		LEFT JOIN sim_detections d ON d.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.started_at DESC, r.run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var cfg sql.NullString
		if err := rows.Scan(&r.RunID, &r.SceneName, &cfg, &r.StartedAt, &r.Ticks, &r.Detections); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if cfg.Valid {
			r.Config = json.RawMessage(cfg.String)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
