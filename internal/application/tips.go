package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"agro-bot/internal/domain/entity"
	"agro-bot/internal/domain/port"
)

// TipsService отдаёт советы по выращиванию с кэшированием по культуре и языку.
// Советы генерирует внешний ИИ, поэтому повторные запросы берём из кэша.
type TipsService struct {
	provider port.TipsProvider
	cache    *gocache.Cache
}

// NewTipsService создаёт сервис советов. ttl — время жизни записи в кэше.
func NewTipsService(provider port.TipsProvider, ttl time.Duration) *TipsService {
	return &TipsService{
		provider: provider,
		cache:    gocache.New(ttl, 2*ttl),
	}
}

// CultivationTips возвращает советы для культуры на языке чата.
func (s *TipsService) CultivationTips(ctx context.Context, cropName string, lang entity.Language) (*entity.CropTips, error) {
	if s.provider == nil {
		return nil, errors.New("tips provider is not configured")
	}

	key := fmt.Sprintf("%s|%s", cropName, lang)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*entity.CropTips), nil
	}

	tips, err := s.provider.CultivationTips(ctx, cropName, lang)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, tips, gocache.DefaultExpiration)
	return tips, nil
}
