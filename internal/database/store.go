// Package database archives algorithm runs so they can be replayed
// later without re-executing the script.
//
// It implements the Store interface on SQLite with WAL mode. Frames are
// kept as the JSON payloads produced by the frame codec.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store defines the interface for run persistence.
type Store interface {
	// InsertRun persists a run. An existing run with the same ID has its
	// end time, status, step count and error updated.
	InsertRun(run *Run) error
	// BatchInsertFrames inserts the frames of one run in a single transaction.
	BatchInsertFrames(frames []*FrameRecord) error

	// QueryRuns returns runs matching the filter, most recent first.
	QueryRuns(filter RunFilter) ([]*Run, error)
	// GetRun returns a single run.
	GetRun(runID string) (*Run, error)
	// LoadFrames returns the frames of a run ordered by sequence.
	LoadFrames(runID string) ([]*FrameRecord, error)
	// DeleteRun removes a run and its frames.
	DeleteRun(runID string) error

	// Close gracefully shuts down the database connection.
	Close() error
}

// ============================================================
// Domain Models
// ============================================================

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one execution of an algorithm script.
type Run struct {
	RunID     string  `json:"run_id"`
	Algorithm string  `json:"algorithm"`
	VarName   string  `json:"var_name"`
	Input     string  `json:"input"`
	StartTime int64   `json:"start_time"`
	EndTime   *int64  `json:"end_time,omitempty"`
	Status    string  `json:"status"`
	StepCount int     `json:"step_count"`
	Error     *string `json:"error,omitempty"`
}

// FrameRecord is one stored step. Payload is an encoded frame.
type FrameRecord struct {
	RunID   string `json:"run_id"`
	Seq     int    `json:"seq"`
	Line    int    `json:"line"`
	Payload string `json:"payload"`
}

// RunFilter defines query parameters for run listing.
type RunFilter struct {
	Algorithm *string `json:"algorithm,omitempty"`
	Status    *string `json:"status,omitempty"`
	Since     *int64  `json:"since,omitempty"` // Unix nanoseconds
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements the Store interface using SQLite.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertRun   *sql.Stmt
	stmtInsertFrame *sql.Stmt
}

// NewDBService opens the database, initializes the schema and prepares
// the insert statements. Use ":memory:" for an in-memory database.
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// One connection: SQLite has a single writer, and ":memory:" is
	// per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{db: db, path: path}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}
	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtInsertRun, err = s.db.Prepare(`
		INSERT INTO runs (run_id, algorithm, var_name, input, start_time, end_time, status, step_count, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			end_time = COALESCE(excluded.end_time, runs.end_time),
			status = excluded.status,
			step_count = excluded.step_count,
			error = excluded.error
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertRun: %w", err)
	}

	s.stmtInsertFrame, err = s.db.Prepare(`
		INSERT INTO frames (run_id, seq, line, payload) VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO UPDATE SET line = excluded.line, payload = excluded.payload
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertFrame: %w", err)
	}
	return nil
}

// InsertRun persists or updates a run.
func (s *DBService) InsertRun(run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.stmtInsertRun.Exec(
		run.RunID, run.Algorithm, run.VarName, run.Input,
		run.StartTime, run.EndTime, run.Status, run.StepCount, run.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.RunID, err)
	}
	return nil
}

// BatchInsertFrames inserts frames within a single transaction.
func (s *DBService) BatchInsertFrames(frames []*FrameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch frame transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt := tx.Stmt(s.stmtInsertFrame)
	for _, f := range frames {
		if _, err := stmt.Exec(f.RunID, f.Seq, f.Line, f.Payload); err != nil {
			return fmt.Errorf("batch inserting frame %s/%d: %w", f.RunID, f.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch frame transaction: %w", err)
	}
	return nil
}

// QueryRuns returns runs matching the filter, ordered by start_time
// descending.
func (s *DBService) QueryRuns(filter RunFilter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT run_id, algorithm, var_name, input, start_time, end_time, status, step_count, error
		FROM runs WHERE 1=1`
	args := make([]interface{}, 0)

	if filter.Algorithm != nil {
		query += ` AND algorithm = ?`
		args = append(args, *filter.Algorithm)
	}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filter.Status)
	}
	if filter.Since != nil {
		query += ` AND start_time >= ?`
		args = append(args, *filter.Since)
	}

	query += ` ORDER BY start_time DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else {
		query += ` LIMIT 100`
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given ID, or ErrRunNotFound.
func (s *DBService) GetRun(runID string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT run_id, algorithm, var_name, input, start_time, end_time, status, step_count, error
		FROM runs WHERE run_id = ?
	`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", runID, err)
	}
	return r, nil
}

// LoadFrames returns the frames of a run ordered by sequence.
func (s *DBService) LoadFrames(runID string) ([]*FrameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT run_id, seq, line, payload FROM frames
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying frames for run %s: %w", runID, err)
	}
	defer rows.Close()

	var frames []*FrameRecord
	for rows.Next() {
		f := &FrameRecord{}
		if err := rows.Scan(&f.RunID, &f.Seq, &f.Line, &f.Payload); err != nil {
			return nil, fmt.Errorf("scanning frame row: %w", err)
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// DeleteRun removes a run; its frames go with it.
func (s *DBService) DeleteRun(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("deleting run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// Close releases the prepared statements and the connection.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtInsertRun, s.stmtInsertFrame} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

// ============================================================
// Scan Helpers
// ============================================================

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (*Run, error) {
	r := &Run{}
	err := sc.Scan(&r.RunID, &r.Algorithm, &r.VarName, &r.Input,
		&r.StartTime, &r.EndTime, &r.Status, &r.StepCount, &r.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run row: %w", err)
	}
	return r, nil
}
