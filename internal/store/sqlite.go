package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("schedule run not found")

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Run statuses.
const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
)

// Run is one stored scheduling run. Data holds the exported schedule CSV and
// Report the validator text.
type Run struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Days        int       `json:"days"`
	Coverage    float64   `json:"coverage"`
	Scheduled   int       `json:"scheduled"`
	Unscheduled int       `json:"unscheduled"`
	Report      string    `json:"report,omitempty"`
	Data        string    `json:"data,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type runRow struct {
	ID          string  `db:"id"`
	Status      string  `db:"status"`
	Days        int     `db:"days"`
	Coverage    float64 `db:"coverage"`
	Scheduled   int     `db:"scheduled"`
	Unscheduled int     `db:"unscheduled"`
	Report      string  `db:"report"`
	Data        string  `db:"data"`
	CreatedAt   string  `db:"created_at"`
}

func (r runRow) toRun() (*Run, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of %s: %w", r.ID, err)
	}
	return &Run{
		ID:          r.ID,
		Status:      r.Status,
		Days:        r.Days,
		Coverage:    r.Coverage,
		Scheduled:   r.Scheduled,
		Unscheduled: r.Unscheduled,
		Report:      r.Report,
		Data:        r.Data,
		CreatedAt:   created,
	}, nil
}

// SQLiteStore keeps runs in SQLite through sqlx.
type SQLiteStore struct {
	db  *sqlx.DB
	log *zap.Logger
}

// NewSQLiteStore opens (or creates) the database at path. Use ":memory:" for
// an in-process database.
func NewSQLiteStore(path string, log *zap.Logger) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteStore{db: db, log: log.Named("store")}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates the tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.log.Debug("sql", zap.String("op", "migrate"))
	return migrate(ctx, s.db)
}

// Create inserts run, filling in ID and CreatedAt when they are empty.
func (s *SQLiteStore) Create(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	s.log.Debug("sql", zap.String("op", "insert"), zap.String("id", run.ID))

	row := runRow{
		ID:          run.ID,
		Status:      run.Status,
		Days:        run.Days,
		Coverage:    run.Coverage,
		Scheduled:   run.Scheduled,
		Unscheduled: run.Unscheduled,
		Report:      run.Report,
		Data:        run.Data,
		CreatedAt:   run.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO schedule_runs
		(id, status, days, coverage, scheduled, unscheduled, report, data, created_at)
		VALUES (:id, :status, :days, :coverage, :scheduled, :unscheduled, :report, :data, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the full run including its data and report.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	var row runRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM schedule_runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return row.toRun()
}

// List returns run summaries, newest first. Data and Report are left empty.
func (s *SQLiteStore) List(ctx context.Context) ([]*Run, error) {
	var rows []runRow
	err := s.db.SelectContext(ctx, &rows, `SELECT id, status, days, coverage, scheduled, unscheduled, created_at
		FROM schedule_runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	runs := make([]*Run, 0, len(rows))
	for _, r := range rows {
		run, err := r.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Delete removes a run. Deleting an unknown id returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.log.Debug("sql", zap.String("op", "delete"), zap.String("id", id))
	res, err := s.db.ExecContext(ctx, `DELETE FROM schedule_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
