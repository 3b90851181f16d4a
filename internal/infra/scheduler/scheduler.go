package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// RetryScheduler decides how long the poller sleeps between two cycles.
type RetryScheduler struct {
	schedule cron.Schedule
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

// NewRetryScheduler builds a scheduler from a cron spec when spec is non-empty,
// otherwise from the fixed retry period.
func NewRetryScheduler(spec string, period time.Duration) (*RetryScheduler, error) {
	if spec == "" {
		return Every(period), nil
	}
	schedule, err := cron.ParseStandard(spec) // Accepts "@every 10m" and 5-field expressions
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	return newRetryScheduler(schedule), nil
}

// Every returns a scheduler that sleeps exactly period after each call.
func Every(period time.Duration) *RetryScheduler {
	return newRetryScheduler(fixedDelay(period))
}

// fixedDelay is a cron.Schedule without the whole-second rounding of cron.Every.
type fixedDelay time.Duration

func (d fixedDelay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}

func newRetryScheduler(schedule cron.Schedule) *RetryScheduler {
	return &RetryScheduler{
		schedule: schedule,
		now:      time.Now,
		after:    time.After,
	}
}

// Delay reports how long Wait would sleep if called now.
func (s *RetryScheduler) Delay() time.Duration {
	now := s.now()
	return s.schedule.Next(now).Sub(now)
}

// Wait blocks until the next activation or until ctx is done, in which case ctx.Err() is returned.
func (s *RetryScheduler) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.after(s.Delay()):
		return nil
	}
}
