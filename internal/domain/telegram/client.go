// internal/domain/telegram/client.go
package telegram

import "gopkg.in/telebot.v3"

// Client sends text to a Telegram chat. The notifier depends on this instead of *telebot.Bot
// so delivery can be faked in tests.
type Client interface {
	// SendMessage delivers text to chat, a numeric chat id or an @username; nil options means plain text.
	SendMessage(chat string, text string, options *telebot.SendOptions) error
}
