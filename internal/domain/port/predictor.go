package port

import (
	"context"

	"agro-bot/internal/domain/entity"
)

// PestPredictor интерфейс удалённого классификатора вредителей
type PestPredictor interface {
	// PredictPest отправляет изображение и возвращает распознанного вредителя
	PredictPest(ctx context.Context, image []byte) (*entity.PestResult, error)
}

// CropPredictor интерфейс удалённого классификатора здоровья растения
type CropPredictor interface {
	// PredictCropHealth отправляет изображение и возвращает оценку здоровья
	PredictCropHealth(ctx context.Context, image []byte) (*entity.CropResult, error)
}
