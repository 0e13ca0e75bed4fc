package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sendMessage sends any chattable through the bot API. With a nil API
// (unit tests) the message is recorded instead of sent.
func (b *Bot) sendMessage(msg tgbotapi.Chattable) {
	if b.api == nil {
		b.sent = append(b.sent, msg)
		return
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}
