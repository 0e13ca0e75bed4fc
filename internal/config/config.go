package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string
	AdminID       int64

	// Remote camera service endpoints, derived from CAMERA_IP_SERVICE
	CameraListURL  string
	CameraImageURL string
	CameraTimeout  time.Duration

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	UseMockDB bool
}

const defaultCameraTimeout = 10 * time.Second

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Admin user ID (required)
	adminStr := os.Getenv("TELEGRAM_ROOT_USER")
	if adminStr == "" {
		return nil, fmt.Errorf("TELEGRAM_ROOT_USER is required (numeric Telegram user ID of the admin)")
	}
	adminID, err := strconv.ParseInt(adminStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ROOT_USER %q: %w", adminStr, err)
	}
	config.AdminID = adminID

	// Camera service host (required); the list and image endpoints are
	// derived from it
	cameraHost := os.Getenv("CAMERA_IP_SERVICE")
	if cameraHost == "" {
		return nil, fmt.Errorf("CAMERA_IP_SERVICE is required (host:port of the camera service)")
	}
	config.CameraListURL = fmt.Sprintf("http://%s/cameras", cameraHost)
	config.CameraImageURL = fmt.Sprintf("http://%s/image", cameraHost)

	config.CameraTimeout = defaultCameraTimeout
	if timeoutStr := os.Getenv("CAMERA_HTTP_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid CAMERA_HTTP_TIMEOUT_SECONDS: %s", timeoutStr)
		}
		config.CameraTimeout = time.Duration(seconds) * time.Second
	}

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Use Mock DB (default: false)
	config.UseMockDB = os.Getenv("USE_MOCK_DB") == "true"

	// ClickHouse configuration (required if not using mock)
	if !config.UseMockDB {
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when USE_MOCK_DB is not set")
		}

		portStr := os.Getenv("CLICKHOUSE_PORT")
		if portStr == "" {
			config.ClickHousePort = 9000 // Default ClickHouse native port
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
			}
			config.ClickHousePort = port
		}

		config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
		if config.ClickHouseDatabase == "" {
			config.ClickHouseDatabase = "default"
		}

		config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
		if config.ClickHouseUser == "" {
			config.ClickHouseUser = "default"
		}

		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		// Password is optional, can be empty

		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	}

	return config, nil
}
