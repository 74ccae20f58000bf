package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"agro-bot/internal/domain/entity"
	"agro-bot/internal/domain/port"
)

// PredictPest отправляет изображение классификатору вредителей.
func (c *Client) PredictPest(ctx context.Context, image []byte) (*entity.PestResult, error) {
	body, err := c.postImage(ctx, "/predict/pest", image)
	if err != nil {
		return nil, err
	}

	var dto struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode pest response: %w", err)
	}

	return &entity.PestResult{
		Label:      dto.Label,
		Confidence: dto.Confidence,
		Extra:      extraFields(body, "label", "confidence"),
	}, nil
}

// PredictCropHealth отправляет изображение классификатору здоровья растения.
func (c *Client) PredictCropHealth(ctx context.Context, image []byte) (*entity.CropResult, error) {
	body, err := c.postImage(ctx, "/predict/crop", image)
	if err != nil {
		return nil, err
	}

	var dto struct {
		IsHealthy   bool    `json:"is_healthy"`
		Disease     string  `json:"disease"`
		Description string  `json:"description"`
		Confidence  float64 `json:"confidence"`
	}
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode crop response: %w", err)
	}

	return &entity.CropResult{
		IsHealthy:   dto.IsHealthy,
		Disease:     dto.Disease,
		Description: dto.Description,
		Confidence:  dto.Confidence,
		Extra:       extraFields(body, "is_healthy", "disease", "description", "confidence"),
	}, nil
}

// postImage загружает изображение полем file и возвращает тело ответа.
// Любой отказ транспорта, не-2xx статус или битое тело — обычная ошибка,
// оркестратор сводит её к отказу соответствующей модели.
func (c *Client) postImage(ctx context.Context, path string, image []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(image); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

// Проверка реализации интерфейсов
var (
	_ port.PestPredictor = (*Client)(nil)
	_ port.CropPredictor = (*Client)(nil)
)
