// internal/app/notifier.go
package app

import (
	"context"
	"unicode/utf8"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// MaxMessageRunes is the Bot API limit for the text of one sendMessage call.
const MaxMessageRunes = 4096

const truncationMark = "…"

// Notifier delivers plain text messages to one chat.
// Notify reports whether the message was delivered; callers use it for logging only.
type Notifier interface {
	Notify(ctx context.Context, message string) bool
}

// ChatNotifier sends through a Telegram client. Failures never leave Notify: they are logged and dropped.
type ChatNotifier struct {
	client  domainTelegram.Client
	chatID  string
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewChatNotifier creates a notifier. A nil limiter means sends are not throttled.
func NewChatNotifier(client domainTelegram.Client, chatID string, limiter *rate.Limiter, logger *logrus.Entry) *ChatNotifier {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &ChatNotifier{
		client:  client,
		chatID:  chatID,
		limiter: limiter,
		logger:  logger,
	}
}

func (n *ChatNotifier) Notify(ctx context.Context, message string) bool {
	logCtx := n.logger.WithField("chat_id", n.chatID)

	if err := n.limiter.Wait(ctx); err != nil {
		logCtx.WithError(&homework.NotificationDeliveryError{ChatID: n.chatID, Err: err}).Error("Message dropped while waiting for send slot")
		return false
	}

	text := truncateRunes(message, MaxMessageRunes)
	if len(text) != len(message) {
		logCtx.WithField("runes", utf8.RuneCountInString(message)).Warn("Message too long for Telegram, truncated")
	}

	if err := n.client.SendMessage(n.chatID, text, nil); err != nil {
		logCtx.WithError(&homework.NotificationDeliveryError{ChatID: n.chatID, Err: err}).Error("Message not sent")
		return false
	}
	logCtx.Debug("Message sent")
	return true
}

// truncateRunes cuts s to at most limit runes on a rune boundary, ending with an ellipsis when cut.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(truncationMark)
	for i := range s {
		if keep == 0 {
			return s[:i] + truncationMark
		}
		keep--
	}
	return s
}
