package entity

// WorkflowState — текущая фаза сценария диагностики.
type WorkflowState string

const (
	StateIdle      WorkflowState = "idle"      // изображение не выбрано
	StateCapturing WorkflowState = "capturing" // камера захвачена
	StateAnalyzing WorkflowState = "analyzing" // обе модели запущены
	StateResults   WorkflowState = "results"   // оба исхода известны
)

// Language — язык интерфейса и консультаций.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
)

// Toggle возвращает противоположный язык.
func (l Language) Toggle() Language {
	if l == LanguageHindi {
		return LanguageEnglish
	}
	return LanguageHindi
}

// Session — состояние диагностики одного чата.
type Session struct {
	ChatID    int64
	State     WorkflowState
	Image     *ImageRef
	Pest      PestOutcome
	Crop      CropOutcome
	Advice    *Advice
	Language  Language
	LastError string
}

// NewSession создаёт сессию с начальным состоянием.
func NewSession(chatID int64) *Session {
	return &Session{
		ChatID:   chatID,
		State:    StateIdle,
		Language: LanguageEnglish,
	}
}

// BeginAnalysis фиксирует изображение и переводит сессию в анализ.
// Прежние исходы, совет и ошибка сбрасываются.
func (s *Session) BeginAnalysis(img *ImageRef) {
	s.Image = img
	s.Pest = PestOutcome{}
	s.Crop = CropOutcome{}
	s.Advice = nil
	s.LastError = ""
	s.State = StateAnalyzing
}

// FinishAnalysis применяет оба исхода разом и открывает результаты.
// Частичный успех — валидное состояние результатов, не ошибка.
func (s *Session) FinishAnalysis(pest PestOutcome, crop CropOutcome) {
	s.Pest = pest
	s.Crop = crop
	s.State = StateResults
}

// AttachAdvice прикрепляет совет консультанта к результатам.
func (s *Session) AttachAdvice(a *Advice) {
	s.Advice = a
}

// SetLanguage меняет язык. Прикреплённый совет при этом устаревает
// и удаляется: пользователь запрашивает его заново на новом языке.
func (s *Session) SetLanguage(lang Language) {
	if lang == s.Language {
		return
	}
	s.Language = lang
	s.Advice = nil
}

// Reset возвращает сессию в начальное состояние. Язык сохраняется.
func (s *Session) Reset() {
	s.Image = nil
	s.Pest = PestOutcome{}
	s.Crop = CropOutcome{}
	s.Advice = nil
	s.LastError = ""
	s.State = StateIdle
}
