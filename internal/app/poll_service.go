// internal/app/poll_service.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// StoppedMessage is sent once when the bot is interrupted.
const StoppedMessage = "Bot stopped manually."

// Fetcher retrieves the raw homework_statuses payload for the window starting at fromDate.
type Fetcher interface {
	Fetch(ctx context.Context, fromDate int64) (any, error)
}

// Waiter blocks for one retry period. It returns ctx.Err() when interrupted.
type Waiter interface {
	Wait(ctx context.Context) error
}

// CycleResult describes one finished poll cycle.
type CycleResult struct {
	Response  *homework.Response // nil unless the payload passed validation
	Message   string             // status message or failure report; empty when nothing was sent
	Delivered bool               // whether the notifier reported Message as delivered
	Err       error
}

// StatusPoller runs the fetch-validate-translate-notify loop.
// The cursor is only touched from Run, so no locking is needed.
type StatusPoller struct {
	fetcher    Fetcher
	translator *Translator
	notifier   Notifier
	waiter     Waiter
	journal    homework.CycleJournal // optional
	logger     *logrus.Entry
	cursor     int64
	now        func() time.Time
}

func NewStatusPoller(
	fetcher Fetcher,
	translator *Translator,
	notifier Notifier,
	waiter Waiter,
	journal homework.CycleJournal, // nil disables the journal
	logger *logrus.Entry,
	startCursor int64, // usually time.Now().Unix()
) *StatusPoller {
	return &StatusPoller{
		fetcher:    fetcher,
		translator: translator,
		notifier:   notifier,
		waiter:     waiter,
		journal:    journal,
		logger:     logger,
		cursor:     startCursor,
		now:        time.Now,
	}
}

// Cursor returns the lower bound used by the next fetch.
func (p *StatusPoller) Cursor() int64 {
	return p.cursor
}

// Run polls until ctx is cancelled and then returns ctx.Err().
// A failing cycle is reported and followed by the usual wait, never by an early retry.
func (p *StatusPoller) Run(ctx context.Context) error {
	p.logger.WithField("from_date", p.cursor).Info("Status poller started")
	for {
		res := p.RunCycle(ctx)
		if ctx.Err() != nil {
			p.logger.Info("Status poller interrupted during a cycle")
			return ctx.Err()
		}

		if err := p.waiter.Wait(ctx); err != nil {
			p.logger.Info("Status poller interrupted while waiting")
			return err
		}

		// The cursor only moves to a date the server reported in a validated payload.
		if res.Response != nil {
			p.cursor = res.Response.CurrentDate
		} else {
			p.logger.WithField("from_date", p.cursor).Debug("Keeping previous cursor after failed cycle")
		}
	}
}

// RunCycle performs one fetch-validate-notify pass and reports what happened.
// It does not sleep and does not move the cursor.
func (p *StatusPoller) RunCycle(ctx context.Context) CycleResult {
	startedAt := p.now()
	logCtx := p.logger.WithField("from_date", p.cursor)

	res := p.check(ctx)
	switch {
	case res.Err != nil && ctx.Err() != nil:
		// Interrupted; the caller stops, nothing to report.
		logCtx.WithError(res.Err).Debug("Cycle aborted by shutdown")
		return res
	case res.Err != nil:
		res.Message = fmt.Sprintf("Program failure: %v", res.Err)
		logCtx.WithFields(failureFields(res.Err)).WithError(res.Err).Error("Poll cycle failed")
		res.Delivered = p.notifier.Notify(ctx, res.Message)
		if !res.Delivered {
			logCtx.Warn("Failure report was not delivered")
		}
	case res.Message != "" && res.Delivered:
		logCtx.WithField("current_date", res.Response.CurrentDate).Info("Homework status changed, notification sent")
	case res.Message != "":
		logCtx.WithField("current_date", res.Response.CurrentDate).Warn("Homework status changed, notification not delivered")
	default:
		logCtx.WithField("current_date", res.Response.CurrentDate).Debug("No homework status changes")
	}

	p.record(ctx, startedAt, res)
	return res
}

func (p *StatusPoller) check(ctx context.Context) CycleResult {
	raw, err := p.fetcher.Fetch(ctx, p.cursor)
	if err != nil {
		return CycleResult{Err: err}
	}

	resp, err := ValidateResponse(raw)
	if err != nil {
		return CycleResult{Err: err}
	}
	if len(resp.Homeworks) == 0 {
		return CycleResult{Response: resp}
	}

	message, err := p.translator.Translate(resp.Homeworks[0])
	if err != nil {
		return CycleResult{Response: resp, Err: err}
	}
	delivered := p.notifier.Notify(ctx, message)
	return CycleResult{Response: resp, Message: message, Delivered: delivered}
}

func (p *StatusPoller) record(ctx context.Context, startedAt time.Time, res CycleResult) {
	if p.journal == nil {
		return
	}
	rec := &homework.CycleRecord{
		StartedAt: startedAt,
		FromDate:  p.cursor,
	}
	if res.Response != nil {
		rec.ServerDate = sql.NullInt64{Int64: res.Response.CurrentDate, Valid: true}
	}
	if res.Message != "" {
		rec.Message = sql.NullString{String: res.Message, Valid: true}
	}
	if res.Err != nil {
		rec.ErrorText = sql.NullString{String: res.Err.Error(), Valid: true}
	}
	if err := p.journal.RecordCycle(ctx, rec); err != nil {
		p.logger.WithError(err).Warn("Failed to record poll cycle")
	}
}

// failureFields adds the details each error kind carries to the log entry.
func failureFields(err error) logrus.Fields {
	fields := logrus.Fields{}
	var (
		networkErr *homework.NetworkError
		serviceErr *homework.RemoteServiceError
		malformed  *homework.MalformedResponseError
		schemaErr  *homework.SchemaError
		unknownErr *homework.UnknownStatusError
	)
	switch {
	case errors.As(err, &networkErr):
		fields["kind"] = "network"
		fields["endpoint"] = networkErr.Endpoint
	case errors.As(err, &serviceErr):
		fields["kind"] = "remote_service"
		fields["status_code"] = serviceErr.StatusCode
		fields["body"] = serviceErr.Body
	case errors.As(err, &malformed):
		fields["kind"] = "malformed_response"
	case errors.As(err, &schemaErr):
		fields["kind"] = "schema"
		fields["key"] = schemaErr.Key
	case errors.As(err, &unknownErr):
		fields["kind"] = "unknown_status"
		fields["status"] = unknownErr.Status
	default:
		fields["kind"] = "unexpected"
	}
	return fields
}
