package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEmail() ComposedEmail {
	return ComposedEmail{
		Subject:         "Cut your response time to seconds",
		Body:            "<p>Hi Sara,</p><p>Short and specific.</p>" + SignatureBlock,
		ConfidenceLevel: ConfidenceHigh,
		EstimatedPerformance: EstimatedPerformance{
			OpenRate:           "55%",
			ReplyRate:          "12%",
			MeetingProbability: "6%",
		},
	}
}

func TestComposedEmailValidate_English(t *testing.T) {
	e := validEmail()
	require.NoError(t, e.Validate(LanguageEnglish))
}

func TestComposedEmailValidate_Arabic(t *testing.T) {
	e := validEmail()
	e.Body = RTLOpenTag + "<p>مرحباً،</p>" + SignatureBlock + "</div>"
	require.NoError(t, e.Validate(LanguageArabic))

	assert.True(t, e.HasRTLWrapper())
	assert.True(t, e.HasSignature())
}

func TestComposedEmailValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		lang   Language
		mutate func(*ComposedEmail)
	}{
		{"empty subject", LanguageEnglish, func(e *ComposedEmail) { e.Subject = "" }},
		{"empty body", LanguageEnglish, func(e *ComposedEmail) { e.Body = "" }},
		{"no signature", LanguageEnglish, func(e *ComposedEmail) { e.Body = "<p>bye</p>" }},
		{"signature mid-body", LanguageEnglish, func(e *ComposedEmail) { e.Body = SignatureBlock + "<p>PS: more text after</p>" }},
		{"arabic without rtl", LanguageArabic, func(e *ComposedEmail) {}},
		{"english with rtl", LanguageEnglish, func(e *ComposedEmail) {
			e.Body = RTLOpenTag + "<p>hello</p>" + SignatureBlock + "</div>"
		}},
		{"missing confidence level", LanguageEnglish, func(e *ComposedEmail) { e.ConfidenceLevel = "" }},
		{"bad confidence level", LanguageEnglish, func(e *ComposedEmail) { e.ConfidenceLevel = "certain" }},
		{"bad open rate", LanguageEnglish, func(e *ComposedEmail) { e.EstimatedPerformance.OpenRate = "very likely" }},
		{"empty reply rate", LanguageEnglish, func(e *ComposedEmail) { e.EstimatedPerformance.ReplyRate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEmail()
			tt.mutate(&e)
			assert.Error(t, e.Validate(tt.lang))
		})
	}
}

func TestPercentageFloat(t *testing.T) {
	tests := []struct {
		in      Percentage
		want    float64
		wantErr bool
	}{
		{"42%", 42, false},
		{"42", 42, false},
		{" 7.5% ", 7.5, false},
		{"", 0, true},
		{"%", 0, true},
		{"high", 0, true},
	}
	for _, tt := range tests {
		got, err := tt.in.Float()
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestHasSignature_TrailingWhitespace(t *testing.T) {
	e := validEmail()
	e.Body += "\n\n"
	assert.True(t, e.HasSignature())
}
