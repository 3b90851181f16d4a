// internal/domain/homework/journal.go
package homework

import (
	"context"
	"database/sql"
	"time"
)

// CycleRecord is the audit entry written after every poll cycle.
type CycleRecord struct {
	ID         int64
	StartedAt  time.Time
	FromDate   int64
	ServerDate sql.NullInt64  // current_date of the validated response
	Message    sql.NullString // text sent to the chat, success or failure
	ErrorText  sql.NullString
	CreatedAt  time.Time
}

// CycleJournal stores cycle records. It is write-only: the poller never reads it back.
type CycleJournal interface {
	RecordCycle(ctx context.Context, rec *CycleRecord) error
}
