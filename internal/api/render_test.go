package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agro-bot/internal/domain/entity"
)

func TestRenderResults_PartialFailure(t *testing.T) {
	sess := entity.NewSession(1)
	sess.BeginAnalysis(entity.NewImageRef("leaf.jpg", []byte("img")))
	sess.FinishAnalysis(
		entity.PestOutcome{Result: &entity.PestResult{Label: "Aphid", Confidence: 0.92}},
		entity.CropOutcome{Err: "crop endpoint down"},
	)

	text := renderResults(sess)
	require.Contains(t, text, "Aphid (92%)")
	// Отказавшая модель показывается как недоступная, а не как ошибка отчёта.
	require.Contains(t, text, "No health data available.")
}

func TestRenderResults_UnhealthyCropInHindi(t *testing.T) {
	sess := entity.NewSession(1)
	sess.SetLanguage(entity.LanguageHindi)
	sess.BeginAnalysis(entity.NewImageRef("leaf.jpg", []byte("img")))
	sess.FinishAnalysis(
		entity.PestOutcome{Err: "pest endpoint down"},
		entity.CropOutcome{Result: &entity.CropResult{
			IsHealthy:  false,
			Disease:    "Leaf Rust",
			Confidence: 0.81,
		}},
	)

	text := renderResults(sess)
	require.Contains(t, text, "अस्वस्थ")
	require.Contains(t, text, "Leaf Rust")
	require.Contains(t, text, "No pest detected or analysis failed.")
}

func TestRenderAdvice(t *testing.T) {
	advice := &entity.Advice{
		Diagnosis:  "Aphid infestation",
		Symptoms:   "Curled leaves",
		Prevention: "Neem spray weekly",
		Remedies: []entity.Remedy{
			{Type: entity.RemedyChemical, Action: "Imidacloprid 0.3ml/l"},
			{Type: entity.RemedyOrganic, Action: "Release ladybugs"},
		},
	}

	text := renderAdvice(advice)
	require.Contains(t, text, "Aphid infestation")
	require.Contains(t, text, "[Chemical] Imidacloprid 0.3ml/l")
	require.Contains(t, text, "[Organic/Cultural] Release ladybugs")
}

func TestRenderAdvice_DegradedAdvice(t *testing.T) {
	advice := &entity.Advice{Diagnosis: "raw model text"}

	text := renderAdvice(advice)
	require.Contains(t, text, "raw model text")
	require.NotContains(t, text, "Remedies")
}

func TestResultsKeyboard_LanguageToggleLabel(t *testing.T) {
	en := resultsKeyboard(entity.LanguageEnglish)
	require.Equal(t, "🌐 हिंदी", en.InlineKeyboard[1][0].Text)

	hi := resultsKeyboard(entity.LanguageHindi)
	require.Equal(t, "🌐 English", hi.InlineKeyboard[1][0].Text)
}
