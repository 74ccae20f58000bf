//go:build gocv
// +build gocv

package camera

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"agro-bot/internal/domain/entity"
	"agro-bot/internal/domain/port"
)

// GoCVSource захватывает кадры с локальной камеры через OpenCV.
type GoCVSource struct {
	DeviceID int
}

// NewGoCVSource создаёт источник захвата для устройства с заданным ID.
func NewGoCVSource(deviceID int) *GoCVSource {
	return &GoCVSource{DeviceID: deviceID}
}

// Acquire открывает устройство камеры в эксклюзивное пользование.
func (s *GoCVSource) Acquire(ctx context.Context) (port.CameraSession, error) {
	_ = ctx
	capture, err := gocv.OpenVideoCapture(s.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrDeviceUnavailable, err)
	}
	if !capture.IsOpened() {
		_ = capture.Close()
		return nil, port.ErrDeviceUnavailable
	}
	return &gocvSession{capture: capture}, nil
}

type gocvSession struct {
	capture *gocv.VideoCapture

	once sync.Once
	err  error
}

// Capture снимает один кадр, кодирует его в JPEG и освобождает устройство.
func (s *gocvSession) Capture() (*entity.ImageRef, error) {
	defer func() { _ = s.Release() }()

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := s.capture.Read(&mat); !ok || mat.Empty() {
		return nil, errors.New("failed to read frame from device")
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return entity.NewImageRef("capture.jpg", data), nil
}

// Release останавливает устройство. Повторные вызовы безопасны.
func (s *gocvSession) Release() error {
	s.once.Do(func() {
		s.err = s.capture.Close()
	})
	return s.err
}

// Проверка реализации интерфейса
var _ port.CaptureSource = (*GoCVSource)(nil)
