package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"camerabot/internal/models"
)

// handleStart shows the camera menu as a reply keyboard.
func (b *Bot) handleStart(message *tgbotapi.Message) {
	labels := b.menuLabels()

	rows := make([][]tgbotapi.KeyboardButton, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}

	text := "Choose a camera:"
	if b.cameras.Len() == 0 {
		text = "No cameras are available right now."
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(rows...)
	b.sendMessage(msg)
}

// menuLabels returns the menu entries in display order: one per cached
// camera plus the fixed help entry.
func (b *Bot) menuLabels() []string {
	return append(b.cameras.Labels(), helpLabel)
}

// handleHelp sends tier-appropriate help text.
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := `Tap a camera button to get a snapshot.

Available commands:
/start - Show the camera menu
/help - Show this help`

	if b.isAdmin(message.From.ID) {
		text += `

Admin commands:
/add_user <id> - Allow a user
/remove_user <id> - Disallow a user
/list_user - List allowed users
/refresh - Reload the camera list`
	}

	b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, text))
}

// sendCameraImage fetches a snapshot for the camera and forwards it as
// a photo reply. Remote failures become a text notice naming the
// camera; they never surface as a broken image or a crash.
func (b *Bot) sendCameraImage(ctx context.Context, chatID int64, cam models.Camera) {
	data, err := b.client.FetchImage(ctx, cam.RemoteID)
	if err != nil {
		b.logger.Error("Failed to fetch camera image",
			zap.Error(err),
			zap.String("camera", cam.DisplayName),
			zap.String("remote_id", cam.RemoteID),
		)
		b.sendMessage(tgbotapi.NewMessage(chatID, fmt.Sprintf("Could not get an image from %s.", cam.DisplayName)))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "snapshot.jpg",
		Bytes: data,
	})
	photo.Caption = cam.DisplayName
	b.sendMessage(photo)
}

// parseUserIDArg extracts the numeric user id argument of an admin
// command. A missing or malformed argument yields a usage prompt.
func (b *Bot) parseUserIDArg(message *tgbotapi.Message) (int64, bool) {
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("Please provide a user id, e.g. /%s 123456789", message.Command())))
		return 0, false
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		b.logger.Info("Malformed user id argument",
			zap.Int64("user_id", message.From.ID),
			zap.String("arg", arg),
		)
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("%q is not a valid user id, expected a number.", arg)))
		return 0, false
	}
	return id, true
}

// handleAddUser adds a user to the allow-list (admin only).
func (b *Bot) handleAddUser(ctx context.Context, message *tgbotapi.Message) {
	if !b.requireAdmin(message) {
		return
	}

	id, ok := b.parseUserIDArg(message)
	if !ok {
		return
	}

	added, err := b.store.Add(ctx, id)
	if err != nil {
		b.logger.Error("Failed to add user", zap.Error(err), zap.Int64("target_id", id))
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, storageErrorReply))
		return
	}

	if added {
		b.logger.Info("User added to allow-list",
			zap.Int64("admin_id", message.From.ID),
			zap.Int64("target_id", id),
		)
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("User %d added.", id)))
	} else {
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("User %d is already allowed.", id)))
	}
}

// handleRemoveUser removes a user from the allow-list (admin only).
// The admin may remove themselves; startup re-enrollment restores
// their membership on the next run.
func (b *Bot) handleRemoveUser(ctx context.Context, message *tgbotapi.Message) {
	if !b.requireAdmin(message) {
		return
	}

	id, ok := b.parseUserIDArg(message)
	if !ok {
		return
	}

	removed, err := b.store.Remove(ctx, id)
	if err != nil {
		b.logger.Error("Failed to remove user", zap.Error(err), zap.Int64("target_id", id))
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, storageErrorReply))
		return
	}

	if removed {
		b.logger.Info("User removed from allow-list",
			zap.Int64("admin_id", message.From.ID),
			zap.Int64("target_id", id),
		)
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("User %d removed.", id)))
	} else {
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("User %d was not found.", id)))
	}
}

// handleListUser lists all allowed user ids (admin only).
func (b *Bot) handleListUser(ctx context.Context, message *tgbotapi.Message) {
	if !b.requireAdmin(message) {
		return
	}

	ids, err := b.store.List(ctx)
	if err != nil {
		b.logger.Error("Failed to list users", zap.Error(err))
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, storageErrorReply))
		return
	}

	if len(ids) == 0 {
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, "The allow-list is empty."))
		return
	}

	var text strings.Builder
	text.WriteString("Allowed users:\n")
	for _, id := range ids {
		text.WriteString(strconv.FormatInt(id, 10))
		text.WriteByte('\n')
	}
	b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, text.String()))
}

// handleRefresh reloads the camera directory from the remote service
// (admin only). A failed refresh keeps the previous snapshot.
func (b *Bot) handleRefresh(ctx context.Context, message *tgbotapi.Message) {
	if !b.requireAdmin(message) {
		return
	}

	if err := b.cameras.Refresh(ctx); err != nil {
		b.logger.Warn("Camera refresh failed, keeping previous snapshot", zap.Error(err))
		b.sendMessage(tgbotapi.NewMessage(message.Chat.ID, "Camera refresh failed, keeping the previous list."))
		return
	}

	b.sendMessage(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("Camera list refreshed: %d cameras.", b.cameras.Len())))
}
