package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecordCycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() err=%v", err)
	}
	defer db.Close()

	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	created := started.Add(time.Second)
	rec := &homework.CycleRecord{
		StartedAt:  started,
		FromDate:   500,
		ServerDate: sql.NullInt64{Int64: 1000, Valid: true},
		Message:    sql.NullString{String: `Changed status of review "hw1". ok`, Valid: true},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO poll_cycles`)).
		WithArgs(started, int64(500), rec.ServerDate, rec.Message, rec.ErrorText).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	if err := NewPostgresCycleJournal(db).RecordCycle(context.Background(), rec); err != nil {
		t.Fatalf("RecordCycle() err=%v", err)
	}
	if rec.ID != 7 || !rec.CreatedAt.Equal(created) {
		t.Fatalf("returned columns not scanned: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordCycle_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() err=%v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO poll_cycles`)).WillReturnError(boom)

	err = NewPostgresCycleJournal(db).RecordCycle(context.Background(), &homework.CycleRecord{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() err=%v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS poll_cycles`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewPostgresCycleJournal(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
