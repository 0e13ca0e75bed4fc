package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"camerabot/internal/bot"
	"camerabot/internal/camera"
	"camerabot/internal/config"
	"camerabot/internal/storage"
	"camerabot/internal/storage/ch"
	"camerabot/internal/storage/stubs"
)

// App represents the application
type App struct {
	config  *config.Config
	logger  *zap.Logger
	store   storage.AllowList
	client  *camera.Client
	cameras *camera.Directory
	bot     *bot.Bot
	server  *http.Server
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	logger.Info("Starting Camera Bot...")

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initCameraDirectory()

	if err := app.initBot(); err != nil {
		return nil, err
	}

	app.initHTTPServer()

	return app, nil
}

// initStore connects the allow-list store and enrolls the admin.
func (a *App) initStore() error {
	var store storage.AllowList
	if a.config.UseMockDB {
		a.logger.Info("Using in-memory allow-list store")
		store = stubs.NewMockAllowList()
	} else {
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		clickhouseStore, err := ch.NewClickHouseAllowList(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		store = clickhouseStore
	}

	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize allow-list store: %w", err)
	}

	if err := a.enrollAdmin(ctx, store); err != nil {
		return err
	}

	a.store = store
	return nil
}

// enrollAdmin adds the configured admin to the allow-list so the admin
// is always a member after initialization. On restart against a
// populated store the add is a no-op.
func (a *App) enrollAdmin(ctx context.Context, store storage.AllowList) error {
	added, err := store.Add(ctx, a.config.AdminID)
	if err != nil {
		return fmt.Errorf("failed to enroll admin user: %w", err)
	}
	if added {
		a.logger.Info("Admin user enrolled in allow-list", zap.Int64("admin_id", a.config.AdminID))
	}
	return nil
}

// initCameraDirectory builds the directory cache and performs the
// initial fetch. A failed fetch is logged and leaves the directory
// empty; it is not fatal.
func (a *App) initCameraDirectory() {
	a.client = camera.NewClient(a.config.CameraListURL, a.config.CameraImageURL, a.config.CameraTimeout)
	a.cameras = camera.NewDirectory(a.client)

	ctx, cancel := context.WithTimeout(context.Background(), a.config.CameraTimeout)
	defer cancel()

	if err := a.cameras.Refresh(ctx); err != nil {
		a.logger.Warn("Initial camera fetch failed, starting with an empty directory", zap.Error(err))
		return
	}
	a.logger.Info("Camera directory loaded", zap.Int("cameras", a.cameras.Len()))
}

// initBot initializes the Telegram bot
func (a *App) initBot() error {
	telegramBot, err := bot.NewBot(a.config.TelegramToken, a.store, a.cameras, a.client, a.config.AdminID, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	a.bot = telegramBot
	return nil
}

// initHTTPServer initializes the HTTP server for health checks and webhook
func (a *App) initHTTPServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	// Root endpoint
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		mode := "polling"
		if a.config.WebhookMode {
			mode = "webhook"
		}
		fmt.Fprintf(w, "Camera Bot is running (mode: %s, cameras: %d)", mode, a.cameras.Len())
	})

	// Webhook endpoint (only used in webhook mode)
	mux.HandleFunc("/telegram-webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			a.logger.Warn("Error decoding webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Process update in background to respond quickly to Telegram
		go a.bot.HandleUpdate(update)

		w.WriteHeader(http.StatusOK)
	})

	a.server = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start HTTP server in background
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in appropriate mode
	if a.config.WebhookMode {
		a.logger.Info("Starting bot in webhook mode", zap.String("webhook_url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
	} else {
		go func() {
			if err := a.bot.Start(); err != nil {
				a.logger.Fatal("Failed to start bot", zap.Error(err))
			}
		}()
	}

	// Wait for interrupt signal
	<-sigChan

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("Error closing allow-list store", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	return nil
}
