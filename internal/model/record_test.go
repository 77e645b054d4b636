package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupKey(t *testing.T) {
	k1 := DedupKey("sara@x.com", "need help with leads")
	k2 := DedupKey("sara@x.com", "need help with leads")
	k3 := DedupKey("sara@x.com", "different description")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, k1, 64)
}

func TestNewLeadRecord(t *testing.T) {
	lead := LeadSubmission{
		Name:              "Sara",
		Email:             "sara@x.com",
		Description:       "drowning in leads",
		PreferredLanguage: LanguageArabic,
	}
	analysis := validAnalysis()
	email := validEmail()

	rec := NewLeadRecord(lead, &analysis, &email)

	assert.Equal(t, "Sara", rec.Name)
	assert.Equal(t, "sara@x.com", rec.Email)
	assert.Equal(t, analysis.Industry, rec.Industry)
	assert.Equal(t, analysis.Decision, rec.Decision)
	assert.Equal(t, analysis.Confidence, rec.ConfidenceScore)
	assert.Equal(t, email.Subject, rec.EmailSubject)
	assert.Equal(t, email.Body, rec.EmailBody)
	assert.Equal(t, LanguageArabic, rec.Language)
	assert.Equal(t, DedupKey("sara@x.com", "drowning in leads"), rec.DedupKey)
}

func TestNewLeadRecord_SuppressedEmail(t *testing.T) {
	lead := LeadSubmission{Name: "Sam", Email: "sam@y.com", Description: "staffing agency inquiry", PreferredLanguage: LanguageEnglish}
	analysis := validAnalysis()
	analysis.Decision = FitNone

	rec := NewLeadRecord(lead, &analysis, nil)

	assert.Equal(t, FitNone, rec.Decision)
	assert.Empty(t, rec.EmailSubject)
	assert.Empty(t, rec.EmailBody)
}
