package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_ROOT_USER", "42")
	t.Setenv("CAMERA_IP_SERVICE", "192.168.88.219:8001")
	t.Setenv("USE_MOCK_DB", "true")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.AdminID)
	assert.Equal(t, "http://192.168.88.219:8001/cameras", cfg.CameraListURL)
	assert.Equal(t, "http://192.168.88.219:8001/image", cfg.CameraImageURL)
	assert.Equal(t, 10*time.Second, cfg.CameraTimeout)
	assert.True(t, cfg.UseMockDB)
}

func TestLoadFromEnv_MissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoadFromEnv_MissingAdmin(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_ROOT_USER", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_ROOT_USER")
}

func TestLoadFromEnv_NonNumericAdmin(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_ROOT_USER", "bob")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnv_MissingCameraService(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CAMERA_IP_SERVICE", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAMERA_IP_SERVICE")
}

func TestLoadFromEnv_CameraTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CAMERA_HTTP_TIMEOUT_SECONDS", "3")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.CameraTimeout)

	t.Setenv("CAMERA_HTTP_TIMEOUT_SECONDS", "zero")
	_, err = LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnv_ClickHouseRequiredWithoutMock(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USE_MOCK_DB", "false")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLICKHOUSE_HOST")

	t.Setenv("CLICKHOUSE_HOST", "localhost")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.ClickHousePort)
	assert.Equal(t, "default", cfg.ClickHouseDatabase)
}
