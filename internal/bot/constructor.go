package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"camerabot/internal/camera"
	"camerabot/internal/storage"
)

// NewBot creates a new Telegram bot backed by the given allow-list
// store and camera directory. adminID is the single privileged user.
func NewBot(token string, store storage.AllowList, cameras *camera.Directory, client *camera.Client, adminID int64, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created",
		zap.String("bot_username", api.Self.UserName),
		zap.Int64("admin_id", adminID),
	)

	return &Bot{
		api:     api,
		store:   store,
		cameras: cameras,
		client:  client,
		adminID: adminID,
		logger:  logger,
	}, nil
}

// GetAPI returns the bot API for testing
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}
