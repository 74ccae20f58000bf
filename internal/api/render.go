package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"agro-bot/internal/domain/entity"
)

// resultsKeyboard — кнопки действий под отчётом диагностики
func resultsKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	langLabel := "🌐 हिंदी"
	if lang == entity.LanguageHindi {
		langLabel = "🌐 English"
	}

	consult := tgbotapi.NewInlineKeyboardButtonData("✨ Ask AI Expert", "consult")
	language := tgbotapi.NewInlineKeyboardButtonData(langLabel, "lang_toggle")
	newScan := tgbotapi.NewInlineKeyboardButtonData("🔄 New Scan", "new_scan")

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(consult),
		tgbotapi.NewInlineKeyboardRow(language, newScan),
	)
}

// renderResults собирает текст отчёта: карточка вредителей и карточка
// здоровья растения. Отказавшая модель показывается как недоступная,
// результат второй при этом выводится как обычно.
func renderResults(sess *entity.Session) string {
	var sb strings.Builder
	sb.WriteString("📋 Diagnosis Report\n\n")

	sb.WriteString("🐛 Pest Detection\n")
	if sess.Pest.OK() {
		pest := sess.Pest.Result
		sb.WriteString(fmt.Sprintf("%s (%.0f%%)\n", pest.Label, pest.Confidence*100))
	} else {
		sb.WriteString("No pest detected or analysis failed.\n")
	}

	sb.WriteString("\n🌿 Crop Health\n")
	if sess.Crop.OK() {
		crop := sess.Crop.Result
		sb.WriteString(healthLabel(crop.IsHealthy, sess.Language))
		if crop.Confidence > 0 {
			sb.WriteString(fmt.Sprintf(" (%.0f%%)", crop.Confidence*100))
		}
		sb.WriteString("\n")
		if !crop.IsHealthy && crop.Disease != "" {
			sb.WriteString(crop.Disease + "\n")
		}
		if crop.Description != "" {
			sb.WriteString(crop.Description + "\n")
		} else {
			sb.WriteString(askExpertHint(sess.Language) + "\n")
		}
	} else {
		sb.WriteString("No health data available.\n")
	}

	return sb.String()
}

func healthLabel(isHealthy bool, lang entity.Language) string {
	if lang == entity.LanguageHindi {
		if isHealthy {
			return "✅ स्वस्थ"
		}
		return "❗ अस्वस्थ"
	}
	if isHealthy {
		return "✅ Healthy"
	}
	return "❗ Unhealthy"
}

func askExpertHint(lang entity.Language) string {
	if lang == entity.LanguageHindi {
		return "विस्तृत विश्लेषण के लिए एआई विशेषज्ञ से पूछें।"
	}
	return "Ask AI Expert for detailed analysis."
}

// renderAdvice собирает текст совета консультанта
func renderAdvice(advice *entity.Advice) string {
	var sb strings.Builder
	sb.WriteString("✨ Expert Diagnosis\n\n")

	if advice.Diagnosis != "" {
		sb.WriteString("📝 Summary\n" + advice.Diagnosis + "\n\n")
	}
	if advice.Symptoms != "" {
		sb.WriteString("🔍 Symptoms to Check\n" + advice.Symptoms + "\n\n")
	}
	if advice.Prevention != "" {
		sb.WriteString("🛡 Prevention\n" + advice.Prevention + "\n\n")
	}

	if len(advice.Remedies) > 0 {
		sb.WriteString("💊 Remedies & Cures\n")
		for _, remedy := range advice.Remedies {
			sb.WriteString(fmt.Sprintf("• [%s] %s\n", remedy.Type, remedy.Action))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderTips собирает текст советов по выращиванию
func renderTips(cropName string, tips *entity.CropTips) string {
	var sb strings.Builder
	sb.WriteString("🌾 Cultivation Tips: " + cropName + "\n")

	sections := []struct {
		title string
		text  string
	}{
		{"🪨 Soil & Climate", tips.SoilClimate},
		{"🌱 Sowing & Planting", tips.SowingPlanting},
		{"💧 Water Management", tips.WaterManagement},
		{"🧪 Nutrient Management", tips.NutrientManagement},
		{"🐛 Pest & Disease Control", tips.PestDiseaseMgmt},
		{"🧺 Harvesting", tips.Harvesting},
	}
	for _, s := range sections {
		if s.text == "" {
			continue
		}
		sb.WriteString("\n" + s.title + "\n" + s.text + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
