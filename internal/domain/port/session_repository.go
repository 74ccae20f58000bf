package port

import (
	"context"

	"agro-bot/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий диагностики
type SessionRepository interface {
	// Get возвращает сессию чата, создаёт новую если не найдена
	Get(ctx context.Context, chatID int64) (*entity.Session, error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.Session) error
}
