package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "agro-bot/internal/application"
	"agro-bot/internal/container"
	"agro-bot/internal/domain/entity"
	"agro-bot/internal/domain/port"
)

const (
	msgStart = `🌱 Welcome! I am your crop diagnosis assistant.

📸 Send me a photo of your crop and I will run pest detection and health analysis together.

📋 Commands:
/camera — take a photo with the device camera
/tips <crop> — cultivation tips for a crop
/lang — switch language (English / हिंदी)
/new — start a new scan
/help — help`

	msgHelp = `ℹ️ How to use the assistant:

1️⃣ Send a crop photo, or use /camera on a device with a camera
2️⃣ Both models analyze the image: pest detection and crop health
3️⃣ From the report, tap "Ask AI Expert" for remedies and prevention

💡 Tips:
• Shoot in good daylight
• Get close to the affected leaves
• One plant per photo works best

📋 Commands:
/camera — take a photo now
/capture — snap a frame while the camera is on
/cancel — turn the camera off
/advice — ask the AI expert about current results
/tips <crop> — cultivation tips
/lang — switch language
/new — start over`

	msgAnalyzing       = "⏳ Analyzing crop health... Running dual-model diagnostics."
	msgCameraOn        = "🎥 Camera is on. Send /capture to take the photo or /cancel to stop."
	msgCameraOff       = "❌ Camera stopped. Send a photo or /camera to try again."
	msgNewScan         = "🌱 Ready for a new scan. Send a photo or use /camera."
	msgSendPhoto       = "📸 Please send a crop photo, or use /camera."
	msgUnknownCommand  = "❓ Unknown command. Use /help for the list."
	msgConsulting      = "✨ Asking the AI expert..."
	msgConsultFailed   = "⚠️ Failed to consult the AI expert. Your results are kept — please try again."
	msgConsultThrottle = "⚠️ AI rate limit reached. Please wait a minute and try again."
	msgNoResults       = "ℹ️ No diagnosis results yet. Send a photo first."
	msgTipsUsage       = "🌾 Usage: /tips <crop name>, e.g. /tips wheat"
	msgTipsFailed      = "⚠️ Could not fetch cultivation tips. Please try again."
	msgDownloadError   = "⚠️ Could not download the photo. Please send it again."
	msgCameraNotActive = "⚠️ Camera is not on. Use /camera first."
	msgProcessingError = "⚠️ Something went wrong. Please try again."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	diagnosis *app.DiagnosisService
	tips      *app.TipsService
	log       *zap.SugaredLogger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, log *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		diagnosis: c.DiagnosisService,
		tips:      c.TipsService,
		log:       log,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(ctx, update.CallbackQuery)
		case update.Message != nil:
			b.handleMessage(ctx, update.Message)
		}
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.diagnosis.Reset(ctx, chatID); err != nil {
			b.log.Errorw("reset failed", "chat_id", chatID, "err", err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "camera":
		sess, err := b.diagnosis.StartCamera(ctx, chatID)
		if err != nil {
			b.log.Errorw("start camera failed", "chat_id", chatID, "err", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		if sess.State != entity.StateCapturing {
			// Устройство недоступно: остаёмся в начальном состоянии.
			b.sendMessage(chatID, "⚠️ "+sess.LastError)
			return
		}
		b.sendMessage(chatID, msgCameraOn)

	case "capture":
		sess, err := b.diagnosis.CaptureFrame(ctx, chatID)
		if errors.Is(err, app.ErrCameraNotActive) {
			b.sendMessage(chatID, msgCameraNotActive)
			return
		}
		if err != nil {
			b.log.Errorw("capture failed", "chat_id", chatID, "err", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		if sess.State != entity.StateResults {
			b.sendMessage(chatID, "⚠️ "+sess.LastError)
			return
		}
		b.sendResults(chatID, sess)

	case "cancel":
		sess, err := b.diagnosis.Session(ctx, chatID)
		if err == nil && sess.State != entity.StateCapturing {
			// Отменять нечего: камера не была включена.
			b.sendMessage(chatID, msgCameraNotActive)
			return
		}
		if _, err := b.diagnosis.CancelCamera(ctx, chatID); err != nil {
			b.log.Errorw("cancel camera failed", "chat_id", chatID, "err", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, msgCameraOff)

	case "new":
		if _, err := b.diagnosis.Reset(ctx, chatID); err != nil {
			b.log.Errorw("reset failed", "chat_id", chatID, "err", err)
		}
		b.sendMessage(chatID, msgNewScan)

	case "lang":
		b.toggleLanguage(ctx, chatID)

	case "advice":
		b.consult(ctx, chatID)

	case "tips":
		b.sendTips(ctx, chatID, strings.TrimSpace(msg.CommandArguments()))

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото: скачивает файл и запускает анализ.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.sendMessage(chatID, msgAnalyzing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.log.Errorw("photo download failed", "chat_id", chatID, "err", err)
		b.sendMessage(chatID, msgDownloadError)
		return
	}

	img := entity.NewImageRef(photo.FileID+".jpg", imageData)

	sess, err := b.diagnosis.SubmitImage(ctx, chatID, img)
	if err != nil {
		b.log.Errorw("diagnosis failed", "chat_id", chatID, "err", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	b.sendResults(chatID, sess)
}

// handleCallback обрабатывает нажатия кнопок под отчётом
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Подтверждаем нажатие, чтобы убрать "часики" в клиенте.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Warnw("callback ack failed", "err", err)
	}

	// Для старых сообщений Telegram не присылает Message.
	if cb.Message == nil {
		b.log.Warnw("callback without message", "data", cb.Data)
		return
	}
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case "consult":
		b.consult(ctx, chatID)
	case "lang_toggle":
		b.toggleLanguage(ctx, chatID)
	case "new_scan":
		if _, err := b.diagnosis.Reset(ctx, chatID); err != nil {
			b.log.Errorw("reset failed", "chat_id", chatID, "err", err)
		}
		b.sendMessage(chatID, msgNewScan)
	}
}

// consult запрашивает совет ИИ-эксперта по текущим результатам
func (b *Bot) consult(ctx context.Context, chatID int64) {
	sess, err := b.diagnosis.Session(ctx, chatID)
	if err == nil && sess.State != entity.StateResults {
		b.sendMessage(chatID, msgNoResults)
		return
	}

	b.sendMessage(chatID, msgConsulting)

	advice, err := b.diagnosis.Consult(ctx, chatID)
	if err != nil {
		switch {
		case errors.Is(err, port.ErrConsultThrottled):
			b.sendMessage(chatID, msgConsultThrottle)
		default:
			// Результаты диагностики сохранены, запрос можно повторить.
			b.sendMessage(chatID, msgConsultFailed)
		}
		return
	}

	b.sendMessage(chatID, renderAdvice(advice))
}

// toggleLanguage переключает язык чата и предлагает запросить совет заново
func (b *Bot) toggleLanguage(ctx context.Context, chatID int64) {
	sess, err := b.diagnosis.Session(ctx, chatID)
	if err != nil {
		b.log.Errorw("get session failed", "chat_id", chatID, "err", err)
		return
	}

	hadAdvice := sess.Advice != nil

	sess, err = b.diagnosis.SetLanguage(ctx, chatID, sess.Language.Toggle())
	if err != nil {
		b.log.Errorw("set language failed", "chat_id", chatID, "err", err)
		return
	}

	if sess.Language == entity.LanguageHindi {
		b.sendMessage(chatID, "🌐 भाषा हिंदी में बदल दी गई है।")
	} else {
		b.sendMessage(chatID, "🌐 Language switched to English.")
	}

	// Совет на старом языке сброшен: показываем отчёт заново с кнопкой запроса.
	if sess.State == entity.StateResults {
		if hadAdvice {
			b.sendResults(chatID, sess)
		}
	}
}

// sendTips отправляет советы по выращиванию культуры
func (b *Bot) sendTips(ctx context.Context, chatID int64, cropName string) {
	if cropName == "" {
		b.sendMessage(chatID, msgTipsUsage)
		return
	}

	sess, err := b.diagnosis.Session(ctx, chatID)
	if err != nil {
		b.log.Errorw("get session failed", "chat_id", chatID, "err", err)
		return
	}

	tips, err := b.tips.CultivationTips(ctx, cropName, sess.Language)
	if err != nil {
		b.log.Errorw("tips request failed", "chat_id", chatID, "crop", cropName, "err", err)
		b.sendMessage(chatID, msgTipsFailed)
		return
	}

	b.sendMessage(chatID, renderTips(cropName, tips))
}

// sendResults отправляет отчёт диагностики с кнопками действий
func (b *Bot) sendResults(chatID int64, sess *entity.Session) {
	msg := tgbotapi.NewMessage(chatID, renderResults(sess))
	msg.ReplyMarkup = resultsKeyboard(sess.Language)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorw("send results failed", "chat_id", chatID, "err", err)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorw("send message failed", "chat_id", chatID, "err", err)
	}
}
