package port

import (
	"context"

	"agro-bot/internal/domain/entity"
)

// TipsProvider интерфейс внешнего источника советов по выращиванию
type TipsProvider interface {
	// CultivationTips возвращает советы для культуры на выбранном языке
	CultivationTips(ctx context.Context, cropName string, lang entity.Language) (*entity.CropTips, error)
}
