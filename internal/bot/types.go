package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"camerabot/internal/camera"
	"camerabot/internal/storage"
)

// Bot represents the Telegram bot wrapper. Each inbound message is
// handled statelessly against the current allow-list and camera
// directory; there is no conversation state.
type Bot struct {
	api     *tgbotapi.BotAPI
	store   storage.AllowList
	cameras *camera.Directory
	client  *camera.Client
	adminID int64
	logger  *zap.Logger

	// sent collects outgoing messages when api is nil (tests)
	sent []tgbotapi.Chattable
}

// Fixed labels and replies used by the dispatcher.
const (
	helpLabel = "Help"

	deniedReply       = "Sorry, you are not authorized to use this bot."
	unknownReply      = "Unknown command. Use /start to see available cameras."
	storageErrorReply = "Something went wrong, please try again."
)
