package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"agro-bot/internal/domain/entity"
	"agro-bot/internal/domain/port"
)

// NoPestText — фиксированный текст запроса, когда вредитель не распознан.
const NoPestText = "No pest detected."

// ErrCameraNotActive — кадр запрошен без захваченного устройства камеры.
var ErrCameraNotActive = errors.New("camera is not active")

const (
	errCameraAccess  = "Could not access camera. Please check permissions."
	errCameraCapture = "Could not capture a frame. Please try again."
)

// DiagnosisService управляет сценарием диагностики: выбор изображения,
// параллельный запуск двух моделей и консультация ИИ-эксперта.
// Сервис — единственный владелец захваченных устройств камеры.
type DiagnosisService struct {
	sessions   port.SessionRepository
	pest       port.PestPredictor
	crop       port.CropPredictor
	consultant port.Consultant
	camera     port.CaptureSource
	log        *zap.SugaredLogger

	mu      sync.Mutex
	devices map[int64]port.CameraSession
}

// NewDiagnosisService создаёт сервис диагностики.
func NewDiagnosisService(
	sessions port.SessionRepository,
	pest port.PestPredictor,
	crop port.CropPredictor,
	consultant port.Consultant,
	camera port.CaptureSource,
	log *zap.SugaredLogger,
) *DiagnosisService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DiagnosisService{
		sessions:   sessions,
		pest:       pest,
		crop:       crop,
		consultant: consultant,
		camera:     camera,
		log:        log,
		devices:    make(map[int64]port.CameraSession),
	}
}

// Session возвращает текущую сессию чата.
func (s *DiagnosisService) Session(ctx context.Context, chatID int64) (*entity.Session, error) {
	return s.sessions.Get(ctx, chatID)
}

// SubmitImage фиксирует изображение и запускает обе модели параллельно.
// Результаты открываются только когда оба запроса завершились — успехом
// или отказом; отказ одной модели не отменяет и не задерживает вторую.
func (s *DiagnosisService) SubmitImage(ctx context.Context, chatID int64, img *entity.ImageRef) (*entity.Session, error) {
	if s.pest == nil || s.crop == nil {
		return nil, errors.New("predictors are not configured")
	}

	// Пользователь мог прислать фото, не дойдя до /capture:
	// удержанное устройство камеры освобождаем до смены состояния.
	s.releaseDevice(chatID)

	sess, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	sess.BeginAnalysis(img)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	var (
		wg   sync.WaitGroup
		pest entity.PestOutcome
		crop entity.CropOutcome
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		res, err := s.pest.PredictPest(ctx, img.Data)
		if err != nil {
			s.log.Warnw("pest prediction failed", "chat_id", chatID, "err", err)
			pest = entity.PestOutcome{Err: err.Error()}
			return
		}
		pest = entity.PestOutcome{Result: res}
	}()
	go func() {
		defer wg.Done()
		res, err := s.crop.PredictCropHealth(ctx, img.Data)
		if err != nil {
			s.log.Warnw("crop prediction failed", "chat_id", chatID, "err", err)
			crop = entity.CropOutcome{Err: err.Error()}
			return
		}
		crop = entity.CropOutcome{Result: res}
	}()
	wg.Wait()

	sess.FinishAnalysis(pest, crop)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// StartCamera захватывает устройство камеры и переводит сессию в предпросмотр.
// При недоступности устройства сессия остаётся в начальном состоянии,
// ошибка сохраняется в LastError — пользователь может повторить.
func (s *DiagnosisService) StartCamera(ctx context.Context, chatID int64) (*entity.Session, error) {
	if s.camera == nil {
		return nil, errors.New("capture source is not configured")
	}

	sess, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	device, err := s.camera.Acquire(ctx)
	if err != nil {
		s.log.Warnw("camera acquire failed", "chat_id", chatID, "err", err)
		sess.LastError = errCameraAccess
		sess.State = entity.StateIdle
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	}

	s.mu.Lock()
	// Повторный /camera: прежнее устройство освобождаем, висящих захватов не оставляем.
	if prev, ok := s.devices[chatID]; ok {
		_ = prev.Release()
	}
	s.devices[chatID] = device
	s.mu.Unlock()

	sess.LastError = ""
	sess.State = entity.StateCapturing
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// CaptureFrame снимает кадр и отправляет его на анализ.
// Устройство освобождается внутри Capture независимо от результата.
func (s *DiagnosisService) CaptureFrame(ctx context.Context, chatID int64) (*entity.Session, error) {
	s.mu.Lock()
	device, ok := s.devices[chatID]
	delete(s.devices, chatID)
	s.mu.Unlock()

	if !ok {
		return nil, ErrCameraNotActive
	}

	img, err := device.Capture()
	if err != nil {
		s.log.Warnw("frame capture failed", "chat_id", chatID, "err", err)
		_ = device.Release()

		sess, getErr := s.sessions.Get(ctx, chatID)
		if getErr != nil {
			return nil, getErr
		}
		sess.LastError = errCameraCapture
		sess.State = entity.StateIdle
		if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		return sess, nil
	}

	return s.SubmitImage(ctx, chatID, img)
}

// CancelCamera освобождает устройство и возвращает сессию в начало.
// Вне предпросмотра камеры ничего не делает: готовые результаты не теряются.
func (s *DiagnosisService) CancelCamera(ctx context.Context, chatID int64) (*entity.Session, error) {
	s.releaseDevice(chatID)

	sess, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if sess.State != entity.StateCapturing {
		return sess, nil
	}

	sess.LastError = ""
	sess.State = entity.StateIdle
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// DiagnosisText строит текст запроса к консультанту.
// По требованию продукта используется только результат по вредителям,
// данные о здоровье растения в запрос не попадают.
func DiagnosisText(pest *entity.PestResult) string {
	if pest == nil {
		return NoPestText
	}
	label := pest.Label
	if label == "" {
		label = "Unknown"
	}
	return fmt.Sprintf("Pest Detection: %s (Confidence: %.1f%%)", label, pest.Confidence*100)
}

// Consult запрашивает совет ИИ-эксперта и прикрепляет его к результатам.
// Запускается только по явному действию пользователя: внешние консультации
// платные, автоматических вызовов нет. При отказе результаты не меняются.
func (s *DiagnosisService) Consult(ctx context.Context, chatID int64) (*entity.Advice, error) {
	if s.consultant == nil {
		return nil, errors.New("consultant is not configured")
	}

	sess, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if sess.State != entity.StateResults {
		return nil, errors.New("no diagnosis results to consult on")
	}

	advice, err := s.consultant.Consult(ctx, DiagnosisText(sess.Pest.Result), sess.Pest.Result, sess.Language)
	if err != nil {
		s.log.Warnw("consultation failed", "chat_id", chatID, "err", err)
		return nil, err
	}

	sess.AttachAdvice(advice)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return advice, nil
}

// SetLanguage переключает язык чата. Прикреплённый совет при этом удаляется.
func (s *DiagnosisService) SetLanguage(ctx context.Context, chatID int64, lang entity.Language) (*entity.Session, error) {
	sess, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	sess.SetLanguage(lang)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Reset начинает новый осмотр: чистит изображение, исходы, совет и ошибку.
// Удержанное устройство камеры освобождается.
func (s *DiagnosisService) Reset(ctx context.Context, chatID int64) (*entity.Session, error) {
	s.releaseDevice(chatID)

	sess, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	sess.Reset()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Close освобождает все удержанные устройства камеры.
func (s *DiagnosisService) Close() {
	s.mu.Lock()
	devices := s.devices
	s.devices = make(map[int64]port.CameraSession)
	s.mu.Unlock()

	for _, device := range devices {
		if err := device.Release(); err != nil {
			s.log.Warnw("camera release failed", "err", err)
		}
	}
}

// releaseDevice снимает и освобождает удержанное устройство чата, если есть.
func (s *DiagnosisService) releaseDevice(chatID int64) {
	s.mu.Lock()
	device, ok := s.devices[chatID]
	delete(s.devices, chatID)
	s.mu.Unlock()

	if ok {
		if err := device.Release(); err != nil {
			s.log.Warnw("camera release failed", "chat_id", chatID, "err", err)
		}
	}
}
