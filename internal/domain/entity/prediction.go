package entity

// PestResult — ответ классификатора вредителей.
type PestResult struct {
	Label      string
	Confidence float64        // 0..1
	Extra      map[string]any // дополнительные поля сервера
}

// CropResult — ответ классификатора здоровья растения.
type CropResult struct {
	IsHealthy   bool
	Disease     string
	Description string
	Confidence  float64
	Extra       map[string]any
}

// PestOutcome — завершённый исход запроса к классификатору вредителей:
// либо результат, либо причина отказа.
type PestOutcome struct {
	Result *PestResult
	Err    string
}

// OK сообщает, что запрос завершился успешно.
func (o PestOutcome) OK() bool { return o.Result != nil }

// Settled сообщает, что исход известен (успех или отказ).
func (o PestOutcome) Settled() bool { return o.Result != nil || o.Err != "" }

// CropOutcome — завершённый исход запроса к классификатору здоровья.
type CropOutcome struct {
	Result *CropResult
	Err    string
}

// OK сообщает, что запрос завершился успешно.
func (o CropOutcome) OK() bool { return o.Result != nil }

// Settled сообщает, что исход известен (успех или отказ).
func (o CropOutcome) Settled() bool { return o.Result != nil || o.Err != "" }
