package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnalysis() LeadAnalysis {
	return LeadAnalysis{
		Name:           "Sara",
		Language:       LanguageEnglish,
		Industry:       IndustrySaaS,
		Decision:       FitGood,
		Confidence:     8,
		Justification:  "Stated churn problem matches onboarding agents.",
		EmotionalState: EmotionFrustrated,
		UrgencyLevel:   UrgencyMedium,
		CompanyStage:   StageStartup,
	}
}

func TestLeadAnalysisValidate(t *testing.T) {
	a := validAnalysis()
	require.NoError(t, a.Validate())
}

func TestLeadAnalysisValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LeadAnalysis)
		wantErr string
	}{
		{"missing decision", func(a *LeadAnalysis) { a.Decision = "" }, "decision"},
		{"bad decision", func(a *LeadAnalysis) { a.Decision = "perfect_fit" }, "decision"},
		{"missing industry", func(a *LeadAnalysis) { a.Industry = "" }, "industry"},
		{"bad industry", func(a *LeadAnalysis) { a.Industry = "crypto" }, "industry"},
		{"confidence low", func(a *LeadAnalysis) { a.Confidence = 0 }, "confidence"},
		{"confidence high", func(a *LeadAnalysis) { a.Confidence = 11 }, "confidence"},
		{"blank justification", func(a *LeadAnalysis) { a.Justification = " " }, "justification"},
		{"missing emotional state", func(a *LeadAnalysis) { a.EmotionalState = "" }, "emotional_state"},
		{"bad emotional state", func(a *LeadAnalysis) { a.EmotionalState = "furious" }, "emotional_state"},
		{"missing urgency", func(a *LeadAnalysis) { a.UrgencyLevel = "" }, "urgency_level"},
		{"bad urgency", func(a *LeadAnalysis) { a.UrgencyLevel = "critical" }, "urgency_level"},
		{"missing company stage", func(a *LeadAnalysis) { a.CompanyStage = "" }, "company_stage"},
		{"bad company stage", func(a *LeadAnalysis) { a.CompanyStage = "unicorn" }, "company_stage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAnalysis()
			tt.mutate(&a)
			err := a.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLeadAnalysisValidate_DoesNotMutate(t *testing.T) {
	a := validAnalysis()
	before := a
	require.NoError(t, a.Validate())
	assert.Equal(t, before, a)
}

func TestConfidenceBand(t *testing.T) {
	tests := []struct {
		confidence int
		want       ConfidenceLevel
	}{
		{10, ConfidenceHigh},
		{8, ConfidenceHigh},
		{7, ConfidenceMedium},
		{5, ConfidenceMedium},
		{4, ConfidenceLow},
		{1, ConfidenceLow},
	}
	for _, tt := range tests {
		a := validAnalysis()
		a.Confidence = tt.confidence
		assert.Equal(t, tt.want, a.ConfidenceBand(), "confidence %d", tt.confidence)
	}
}
