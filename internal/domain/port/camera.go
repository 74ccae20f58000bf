package port

import (
	"context"
	"errors"

	"agro-bot/internal/domain/entity"
)

// ErrDeviceUnavailable — камера отсутствует, занята или нет прав доступа.
var ErrDeviceUnavailable = errors.New("camera device unavailable")

// CameraSession эксклюзивный захват устройства камеры
type CameraSession interface {
	// Capture снимает один кадр и освобождает устройство
	Capture() (*entity.ImageRef, error)

	// Release освобождает устройство, повторные вызовы безопасны
	Release() error
}

// CaptureSource интерфейс источника захвата камеры
type CaptureSource interface {
	// Acquire открывает устройство камеры в эксклюзивное пользование
	Acquire(ctx context.Context) (CameraSession, error)
}
