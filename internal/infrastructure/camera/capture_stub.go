//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"fmt"

	"agro-bot/internal/domain/port"
)

// GoCVSource — заглушка без OpenCV.
type GoCVSource struct {
	DeviceID int
}

// NewGoCVSource создаёт источник-заглушку (без OpenCV).
func NewGoCVSource(deviceID int) *GoCVSource {
	return &GoCVSource{DeviceID: deviceID}
}

// Acquire возвращает недоступность устройства, если сборка без тега gocv.
// Сценарий диагностики при этом продолжает работать через загрузку фото.
func (s *GoCVSource) Acquire(ctx context.Context) (port.CameraSession, error) {
	_ = ctx
	return nil, fmt.Errorf("%w: gocv build tag is not enabled", port.ErrDeviceUnavailable)
}

// Проверка реализации интерфейса
var _ port.CaptureSource = (*GoCVSource)(nil)
