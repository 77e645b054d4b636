package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/advancify/lead-engine/internal/model"
)

func testLead(lang model.Language) *model.LeadSubmission {
	return &model.LeadSubmission{
		Name:              "Sara",
		Email:             "sara@x.com",
		Description:       "We are drowning in WhatsApp leads, need 24/7 coverage",
		PreferredLanguage: lang,
	}
}

func testAnalysis() model.LeadAnalysis {
	return model.LeadAnalysis{
		Name:           "Sara",
		Language:       model.LanguageEnglish,
		Industry:       model.IndustryEcommerce,
		Decision:       model.FitGood,
		Confidence:     9,
		Justification:  "States a concrete lead-coverage problem the chat agents solve.",
		EmotionalState: model.EmotionOverwhelmed,
		UrgencyLevel:   model.UrgencyHigh,
		CompanyStage:   model.StageGrowth,
		RecommendedServices: []model.RecommendedService{
			{Service: "AI Chat Agents", Description: "24/7 WhatsApp coverage for inbound leads"},
		},
	}
}

func testEmail(lang model.Language) model.ComposedEmail {
	body := "<p>Hi Sara,</p><p>Handling WhatsApp leads around the clock is exactly what we build.</p>" + model.SignatureBlock
	if lang == model.LanguageArabic {
		body = model.RTLOpenTag + "<p>مرحباً سارة،</p><p>تغطية رسائل واتساب على مدار الساعة هي بالضبط ما نبنيه.</p>" + model.SignatureBlock + "</div>"
	}
	return model.ComposedEmail{
		Subject:              "24/7 coverage for your WhatsApp leads",
		SubjectVariations:    []string{"Never miss a WhatsApp lead again"},
		Body:                 body,
		PsychologyTechniques: []string{"authority", "social_proof", "reciprocity"},
		ConfidenceLevel:      model.ConfidenceHigh,
		EstimatedPerformance: model.EstimatedPerformance{
			OpenRate:           "62%",
			ReplyRate:          "18%",
			MeetingProbability: "9%",
		},
	}
}

func marshalJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
