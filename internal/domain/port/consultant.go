package port

import (
	"context"
	"errors"

	"agro-bot/internal/domain/entity"
)

// ErrConsultThrottled — превышен лимит запросов к ИИ-эксперту (HTTP 429).
var ErrConsultThrottled = errors.New("consultation rate limit reached")

// Consultant интерфейс ИИ-эксперта по диагнозу
type Consultant interface {
	// Consult отправляет текст диагноза и возвращает структурированный совет
	Consult(ctx context.Context, diagnosisText string, pest *entity.PestResult, lang entity.Language) (*entity.Advice, error)
}
