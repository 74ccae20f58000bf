package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config — настройки бота из окружения.
type Config struct {
	TelegramToken  string
	BackendBaseURL string
	CameraDeviceID int
	RequestTimeout time.Duration
	TipsCacheTTL   time.Duration
}

// Load читает .env и переменные окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000/api"),
		CameraDeviceID: getEnvInt("CAMERA_DEVICE_ID", 0),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		TipsCacheTTL:   getEnvDuration("TIPS_CACHE_TTL", 30*time.Minute),
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
