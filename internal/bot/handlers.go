package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage classifies and dispatches a single allowed message.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			msg := tgbotapi.NewMessage(message.Chat.ID, "An error occurred while processing your request. Please try again.")
			b.sendMessage(msg)
		}
	}()

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(message)
		case "help":
			b.handleHelp(message)
		case "add_user":
			b.handleAddUser(ctx, message)
		case "remove_user":
			b.handleRemoveUser(ctx, message)
		case "list_user":
			b.handleListUser(ctx, message)
		case "refresh":
			b.handleRefresh(ctx, message)
		default:
			b.replyUnknown(message)
		}
		return
	}

	// Plain text: a camera button, the help button, or noise
	if cam, ok := b.cameras.FindByLabel(message.Text); ok {
		b.sendCameraImage(ctx, message.Chat.ID, cam)
		return
	}
	if message.Text == helpLabel {
		b.handleHelp(message)
		return
	}

	b.replyUnknown(message)
}

func (b *Bot) replyUnknown(message *tgbotapi.Message) {
	b.logger.Warn("Unknown command",
		zap.Int64("user_id", message.From.ID),
		zap.String("text", message.Text),
	)
	b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, unknownReply))
}

// isAdmin reports whether userID is the configured admin.
func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.adminID
}

// requireAdmin denies the message unless its sender is the admin.
func (b *Bot) requireAdmin(message *tgbotapi.Message) bool {
	if b.isAdmin(message.From.ID) {
		return true
	}
	b.logger.Warn("Admin command from non-admin user",
		zap.Int64("user_id", message.From.ID),
		zap.String("text", message.Text),
	)
	b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, deniedReply))
	return false
}
