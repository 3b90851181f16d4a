// internal/infra/database/postgres_cycle_journal.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"homework_status_bot/internal/domain/homework"
)

// "current_date" is reserved in PostgreSQL, hence server_date.
const createPollCyclesTable = `CREATE TABLE IF NOT EXISTS poll_cycles (
    id          BIGSERIAL PRIMARY KEY,
    started_at  TIMESTAMPTZ NOT NULL,
    from_date   BIGINT      NOT NULL,
    server_date BIGINT,
    message     TEXT,
    error_text  TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresCycleJournal struct {
	db *sql.DB
}

func NewPostgresCycleJournal(db *sql.DB) *PostgresCycleJournal {
	return &PostgresCycleJournal{db: db}
}

// EnsureSchema creates the poll_cycles table when it does not exist yet.
func (j *PostgresCycleJournal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, createPollCyclesTable); err != nil {
		return fmt.Errorf("error creating poll_cycles table: %w", err)
	}
	return nil
}

func (j *PostgresCycleJournal) RecordCycle(ctx context.Context, rec *homework.CycleRecord) error {
	query := `INSERT INTO poll_cycles (started_at, from_date, server_date, message, error_text)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at`
	err := j.db.QueryRowContext(ctx, query, rec.StartedAt, rec.FromDate, rec.ServerDate, rec.Message, rec.ErrorText).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording poll cycle: %w", err)
	}
	return nil
}
