package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Start starts the bot in polling mode
func (b *Bot) Start() error {
	b.logger.Info("Starting bot in polling mode")

	// Remove webhook (if any was set previously)
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		b.logger.Warn("Failed to delete webhook", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started successfully. Waiting for updates...")

	// Handle updates (blocks here)
	for update := range updates {
		b.HandleUpdate(update)
	}
	return nil
}

// StartWebhook sets up the bot to receive updates via webhook
func (b *Bot) StartWebhook(webhookURL string) error {
	b.logger.Info("Setting up webhook", zap.String("webhook_url", webhookURL))

	webhookConfig, err := tgbotapi.NewWebhook(webhookURL + "/telegram-webhook")
	if err != nil {
		return err
	}
	webhookConfig.MaxConnections = 40

	if _, err := b.api.Request(webhookConfig); err != nil {
		b.logger.Error("Failed to set webhook", zap.Error(err), zap.String("webhook_url", webhookURL))
		return err
	}

	info, err := b.api.GetWebhookInfo()
	if err != nil {
		b.logger.Warn("Failed to get webhook info", zap.Error(err))
	} else {
		b.logger.Info("Webhook set successfully",
			zap.String("url", info.URL),
			zap.Int("pending_updates", info.PendingUpdateCount),
		)
	}

	return nil
}

// HandleUpdate processes a single update from polling or webhook mode.
// The allow-list gate runs here, before any command handling; a denial
// terminates processing of that update with no side effects.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	ctx := context.Background()
	userID := update.Message.From.ID

	allowed, err := b.store.Contains(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to check allow-list",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sendMessage(tgbotapi.NewMessage(update.Message.Chat.ID, storageErrorReply))
		return
	}

	if !allowed {
		b.logger.Warn("Unauthorized access attempt",
			zap.Int64("user_id", userID),
			zap.String("username", update.Message.From.UserName),
			zap.String("text", update.Message.Text),
		)
		b.sendMessage(tgbotapi.NewMessage(update.Message.Chat.ID, deniedReply))
		return
	}

	b.handleMessage(ctx, update.Message)
}
