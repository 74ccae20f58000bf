package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"agro-bot/internal/domain/entity"
	"agro-bot/internal/domain/port"
)

type consultRequest struct {
	DiagnosisText string         `json:"diagnosis_text"`
	PestData      map[string]any `json:"pest_data"`
	Language      string         `json:"language"`
}

type consultResponse struct {
	Clean json.RawMessage `json:"clean"`
}

type adviceDTO struct {
	Diagnosis  string `json:"diagnosis"`
	Symptoms   string `json:"symptoms"`
	Prevention string `json:"prevention"`
	Remedies   []struct {
		Type   string `json:"type"`
		Action string `json:"action"`
	} `json:"remedies"`
}

// Consult запрашивает совет ИИ-эксперта по тексту диагноза.
// HTTP 429 различим как отдельная ошибка троттлинга.
func (c *Client) Consult(ctx context.Context, diagnosisText string, pest *entity.PestResult, lang entity.Language) (*entity.Advice, error) {
	payload := consultRequest{
		DiagnosisText: diagnosisText,
		Language:      string(lang),
	}
	if pest != nil {
		payload.PestData = map[string]any{
			"label":      pest.Label,
			"confidence": pest.Confidence,
		}
	}

	body, status, err := c.postJSON(ctx, "/consult", payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusTooManyRequests {
		return nil, port.ErrConsultThrottled
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("/consult: status %d: %s", status, truncate(body, 200))
	}

	var dto consultResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode consult response: %w", err)
	}

	return parseAdvice(dto.Clean), nil
}

// parseAdvice разбирает поле clean: это либо готовый объект, либо строка,
// внутри которой JSON. Неразборчивый ответ деградирует до минимального
// совета с сырым текстом в диагнозе, а не до ошибки.
func parseAdvice(clean json.RawMessage) *entity.Advice {
	var dto adviceDTO
	if err := json.Unmarshal(clean, &dto); err == nil {
		return adviceFromDTO(dto)
	}

	var raw string
	if err := json.Unmarshal(clean, &raw); err != nil {
		return &entity.Advice{Diagnosis: string(clean)}
	}
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return &entity.Advice{Diagnosis: raw}
	}
	return adviceFromDTO(dto)
}

func adviceFromDTO(dto adviceDTO) *entity.Advice {
	advice := &entity.Advice{
		Diagnosis:  dto.Diagnosis,
		Symptoms:   dto.Symptoms,
		Prevention: dto.Prevention,
	}
	for _, r := range dto.Remedies {
		advice.Remedies = append(advice.Remedies, entity.Remedy{
			Type:   entity.RemedyType(r.Type),
			Action: r.Action,
		})
	}
	return advice
}

// Проверка реализации интерфейса
var _ port.Consultant = (*Client)(nil)
