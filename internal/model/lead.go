package model

import "time"

// Language is the lead's preferred email language.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageArabic  Language = "Arabic"
)

// AllLanguages returns every supported language.
func AllLanguages() []Language {
	return []Language{LanguageEnglish, LanguageArabic}
}

// LeadSubmission is a validated intake form submission. It is built once by
// the intake validator and never mutated afterwards; its lifetime is a single
// pipeline run.
type LeadSubmission struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Description       string     `json:"description"`
	Phone             string     `json:"phone,omitempty"`
	BusinessType      string     `json:"business_type,omitempty"`
	PreferredLanguage Language   `json:"preferred_language"`
	ScheduleTime      *time.Time `json:"schedule_time,omitempty"`
}
