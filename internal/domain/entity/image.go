package entity

import "github.com/google/uuid"

// ImageRef — ссылка на выбранное изображение: байты плюс отображаемое имя.
// После создания не изменяется; новый снимок — всегда новая ссылка.
type ImageRef struct {
	ID   uuid.UUID
	Name string
	Data []byte
}

// NewImageRef оборачивает байты изображения в новую ссылку.
func NewImageRef(name string, data []byte) *ImageRef {
	return &ImageRef{
		ID:   uuid.New(),
		Name: name,
		Data: data,
	}
}
