package app

import (
	"context"
	"errors"
	"sync"

	"homework_status_bot/internal/domain/homework"

	"gopkg.in/telebot.v3"
)

type fakeFetcher struct {
	responses []fetchResult
	calls     []int64
}

type fetchResult struct {
	raw any
	err error
}

func (f *fakeFetcher) Fetch(ctx context.Context, fromDate int64) (any, error) {
	f.calls = append(f.calls, fromDate)
	if len(f.responses) == 0 {
		return nil, errors.New("fakeFetcher: no more responses")
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r.raw, r.err
}

type recordingNotifier struct {
	messages []string
	fail     bool
}

func (n *recordingNotifier) Notify(ctx context.Context, message string) bool {
	n.messages = append(n.messages, message)
	return !n.fail
}

// countingWaiter returns immediately and cancels the run after limit waits.
type countingWaiter struct {
	calls  int
	limit  int
	cancel context.CancelFunc
}

func (w *countingWaiter) Wait(ctx context.Context) error {
	w.calls++
	if w.calls >= w.limit {
		w.cancel()
		return ctx.Err()
	}
	return nil
}

type fakeTelegramClient struct {
	mu    sync.Mutex
	err   error
	sent  []string
	chats []string
}

func (c *fakeTelegramClient) SendMessage(chatID string, text string, _ *telebot.SendOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chats = append(c.chats, chatID)
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, text)
	return nil
}

type memoryJournal struct {
	records []*homework.CycleRecord
	err     error
}

func (j *memoryJournal) RecordCycle(ctx context.Context, rec *homework.CycleRecord) error {
	j.records = append(j.records, rec)
	return j.err
}
