package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfidenceLevel is the composer's banded restatement of lead quality.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// AllConfidenceLevels returns the valid confidence levels.
func AllConfidenceLevels() []ConfidenceLevel {
	return []ConfidenceLevel{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
}

// SignatureBlock is the mandatory HTML closing appended to every email body.
const SignatureBlock = `--<br>
<strong>Yousef Yasser</strong><br>
Senior Growth Strategist | <strong>Advancify</strong><br>
<small style="color: #666;">Scalable AI Automation for Industry Leaders</small>`

// RTLOpenTag wraps right-to-left content when the lead's language is Arabic.
const RTLOpenTag = `<div dir="rtl">`

// Percentage is a model-estimated rate such as "42%". The model emits these
// as heuristic targets, not measurements; we only require that they parse.
type Percentage string

// Float returns the numeric value of the percentage, tolerating a trailing
// "%" and surrounding whitespace.
func (p Percentage) Float() (float64, error) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(string(p)), "%"))
	if s == "" {
		return 0, fmt.Errorf("empty percentage")
	}
	return strconv.ParseFloat(s, 64)
}

// EstimatedPerformance holds the composer's fabricated performance targets.
type EstimatedPerformance struct {
	OpenRate           Percentage `json:"open_rate"`
	ReplyRate          Percentage `json:"reply_rate"`
	MeetingProbability Percentage `json:"meeting_probability"`
}

// ComposedEmail is the composer stage's structured output. Persisted in
// reduced form (subject + body) on the LeadRecord.
type ComposedEmail struct {
	Subject              string               `json:"subject"`
	SubjectVariations    []string             `json:"subject_variations,omitempty"`
	Body                 string               `json:"body"`
	PsychologyTechniques []string             `json:"psychology_techniques,omitempty"`
	EmotionalAdaptation  string               `json:"emotional_adaptation,omitempty"`
	IndustryTemplate     string               `json:"industry_template,omitempty"`
	ConfidenceLevel      ConfidenceLevel      `json:"confidence_level"`
	EstimatedPerformance EstimatedPerformance `json:"estimated_performance"`
	PersonalizationDepth string               `json:"personalization_depth,omitempty"`
	NaturalLanguageScore string               `json:"natural_language_score,omitempty"`
}

// HasSignature reports whether the body ends with the mandatory signature
// block, ignoring trailing whitespace and a closing RTL container.
func (e *ComposedEmail) HasSignature() bool {
	body := strings.TrimSpace(e.Body)
	body = strings.TrimSuffix(body, "</div>")
	body = strings.TrimSpace(body)
	return strings.HasSuffix(body, SignatureBlock)
}

// HasRTLWrapper reports whether the body is wrapped in a right-to-left
// directional container.
func (e *ComposedEmail) HasRTLWrapper() bool {
	return strings.Contains(e.Body, RTLOpenTag)
}

// Validate checks the composed email against its schema for the given
// language: subject and body present, signature block terminal, RTL wrapper
// present iff Arabic, confidence level a valid enum member, performance
// estimates parseable.
func (e *ComposedEmail) Validate(lang Language) error {
	if strings.TrimSpace(e.Subject) == "" {
		return fmt.Errorf("missing required field: subject")
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Errorf("missing required field: body")
	}
	if !e.HasSignature() {
		return fmt.Errorf("body does not end with the signature block")
	}
	if lang == LanguageArabic && !e.HasRTLWrapper() {
		return fmt.Errorf("arabic body missing rtl container")
	}
	if lang != LanguageArabic && e.HasRTLWrapper() {
		return fmt.Errorf("non-arabic body wrapped in rtl container")
	}
	if e.ConfidenceLevel == "" {
		return fmt.Errorf("missing required field: confidence_level")
	}
	if !contains(AllConfidenceLevels(), e.ConfidenceLevel) {
		return fmt.Errorf("confidence_level %q not in %v", e.ConfidenceLevel, AllConfidenceLevels())
	}
	for name, p := range map[string]Percentage{
		"open_rate":           e.EstimatedPerformance.OpenRate,
		"reply_rate":          e.EstimatedPerformance.ReplyRate,
		"meeting_probability": e.EstimatedPerformance.MeetingProbability,
	} {
		if _, err := p.Float(); err != nil {
			return fmt.Errorf("estimated_performance.%s %q is not a percentage", name, p)
		}
	}
	return nil
}
