package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// Connection pool defaults.
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists session records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the configured DSN and applies migrations.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("PostgresStore.NewPostgresStore: failed to open connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("PostgresStore.NewPostgresStore: ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("PostgresStore.NewPostgresStore: failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("PostgresStore ready")
	return &PostgresStore{db: db}, nil
}

// SaveSession inserts or replaces a session record.
func (s *PostgresStore) SaveSession(ctx context.Context, rec models.SessionRecord) error {
	slog.Debug("PostgresStore.SaveSession: saving record", "id", rec.ID, "participant", rec.Participant)

	answersJSON, analyticsJSON, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (`+recordColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   participant_id = EXCLUDED.participant_id,
		   condition = EXCLUDED.condition,
		   personality = EXCLUDED.personality,
		   answers = EXCLUDED.answers,
		   analytics = EXCLUDED.analytics,
		   started_at = EXCLUDED.started_at,
		   finished_at = EXCLUDED.finished_at,
		   completed = EXCLUDED.completed`,
		rec.ID, rec.Participant, rec.Condition, rec.Personality,
		answersJSON, analyticsJSON, rec.StartedAt, rec.FinishedAt, rec.Completed,
	)
	if err != nil {
		slog.Error("PostgresStore.SaveSession: upsert failed", "error", err, "id", rec.ID)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession returns the record with the given id.
func (s *PostgresStore) GetSession(ctx context.Context, id string) (models.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM sessions WHERE id = $1`, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionRecord{}, ErrNotFound
	}
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("failed to get session: %w", err)
	}
	return rec, nil
}

// ListSessions returns a participant's records ordered by start time.
func (s *PostgresStore) ListSessions(ctx context.Context, participantID string) ([]models.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM sessions WHERE participant_id = $1 ORDER BY started_at`, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return collectSessions(rows)
}

// DeleteSession removes a record.
func (s *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database handle.
func (s *PostgresStore) Close() error { return s.db.Close() }

var _ Store = (*PostgresStore)(nil)
