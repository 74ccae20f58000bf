package main

import (
	"log"

	"go.uber.org/zap"

	"agro-bot/config"
	telegram "agro-bot/internal/api"
	"agro-bot/internal/container"
	"agro-bot/internal/infrastructure/backend"
	"agro-bot/internal/infrastructure/camera"
	"agro-bot/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Клиент REST-бэкенда: обе модели, консультант и советы по выращиванию
	client := backend.NewClient(cfg.BackendBaseURL, cfg.RequestTimeout)

	// Локальная камера (работает при сборке с тегом gocv)
	source := camera.NewGoCVSource(cfg.CameraDeviceID)

	// Создаём хранилище сессий
	sessions := storage.NewMemorySessionRepository()

	// Собираем сервисы приложения
	appContainer := container.New(sessions, client, client, client, source, client, cfg.TipsCacheTTL, sugar)
	defer appContainer.DiagnosisService.Close()

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, sugar)
	if err != nil {
		sugar.Fatalf("Failed to create bot: %v", err)
	}

	sugar.Info("Bot is running...")
	if err := bot.Run(); err != nil {
		sugar.Fatalf("Bot error: %v", err)
	}
}
