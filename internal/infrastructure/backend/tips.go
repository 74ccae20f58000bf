package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"agro-bot/internal/domain/entity"
	"agro-bot/internal/domain/port"
)

type tipsRequest struct {
	CropName string `json:"crop_name"`
	Language string `json:"language"`
}

type tipsDTO struct {
	SoilClimate        string `json:"soil_climate"`
	SowingPlanting     string `json:"sowing_planting"`
	WaterManagement    string `json:"water_management"`
	NutrientManagement string `json:"nutrient_management"`
	PestDiseaseMgmt    string `json:"pest_disease_mgmt"`
	Harvesting         string `json:"harvesting"`
}

// CultivationTips запрашивает советы по выращиванию культуры.
func (c *Client) CultivationTips(ctx context.Context, cropName string, lang entity.Language) (*entity.CropTips, error) {
	body, status, err := c.postJSON(ctx, "/tips", tipsRequest{
		CropName: cropName,
		Language: string(lang),
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("/tips: status %d: %s", status, truncate(body, 200))
	}

	var dto tipsDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode tips response: %w", err)
	}

	return &entity.CropTips{
		SoilClimate:        dto.SoilClimate,
		SowingPlanting:     dto.SowingPlanting,
		WaterManagement:    dto.WaterManagement,
		NutrientManagement: dto.NutrientManagement,
		PestDiseaseMgmt:    dto.PestDiseaseMgmt,
		Harvesting:         dto.Harvesting,
	}, nil
}

// Проверка реализации интерфейса
var _ port.TipsProvider = (*Client)(nil)
