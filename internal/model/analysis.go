package model

import (
	"fmt"
	"strings"
)

// Industry classifies the lead's business into a closed set of verticals.
type Industry string

const (
	IndustrySaaS          Industry = "saas"
	IndustryEcommerce     Industry = "ecommerce"
	IndustryFintech       Industry = "fintech"
	IndustryHealthcare    Industry = "healthcare"
	IndustryB2BServices   Industry = "b2b_services"
	IndustryManufacturing Industry = "manufacturing"
	IndustryRealEstate    Industry = "real_estate"
	IndustryEducation     Industry = "education"
	IndustryMarketing     Industry = "marketing_agencies"
	IndustryOther         Industry = "other"
)

// AllIndustries returns the closed industry list the analyzer may use.
func AllIndustries() []Industry {
	return []Industry{
		IndustrySaaS,
		IndustryEcommerce,
		IndustryFintech,
		IndustryHealthcare,
		IndustryB2BServices,
		IndustryManufacturing,
		IndustryRealEstate,
		IndustryEducation,
		IndustryMarketing,
		IndustryOther,
	}
}

// FitDecision states whether the agency's services address the lead's needs.
type FitDecision string

const (
	FitGood FitDecision = "good_fit"
	FitOK   FitDecision = "ok_fit"
	FitNone FitDecision = "not_a_fit"
)

// AllFitDecisions returns the valid fit decisions.
func AllFitDecisions() []FitDecision {
	return []FitDecision{FitGood, FitOK, FitNone}
}

// EmotionalState is the sentiment inferred from the lead's own wording.
type EmotionalState string

const (
	EmotionExcited     EmotionalState = "excited"
	EmotionFrustrated  EmotionalState = "frustrated"
	EmotionOverwhelmed EmotionalState = "overwhelmed"
	EmotionCurious     EmotionalState = "curious"
	EmotionNeutral     EmotionalState = "neutral"
)

// AllEmotionalStates returns the closed 5-way emotional state enum.
func AllEmotionalStates() []EmotionalState {
	return []EmotionalState{EmotionExcited, EmotionFrustrated, EmotionOverwhelmed, EmotionCurious, EmotionNeutral}
}

// UrgencyLevel is inferred from time-pressure keywords in the description.
type UrgencyLevel string

const (
	UrgencyHigh   UrgencyLevel = "high"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyLow    UrgencyLevel = "low"
)

// AllUrgencyLevels returns the valid urgency levels.
func AllUrgencyLevels() []UrgencyLevel {
	return []UrgencyLevel{UrgencyHigh, UrgencyMedium, UrgencyLow}
}

// CompanyStage is inferred from maturity cues (team size, funding language).
type CompanyStage string

const (
	StageStartup    CompanyStage = "startup"
	StageGrowth     CompanyStage = "growth"
	StageEnterprise CompanyStage = "enterprise"
	StageUnknown    CompanyStage = "unknown"
)

// AllCompanyStages returns the valid company stages.
func AllCompanyStages() []CompanyStage {
	return []CompanyStage{StageStartup, StageGrowth, StageEnterprise, StageUnknown}
}

// RecommendedService pairs a catalog service with the analyzer's explanation
// of how it maps to a stated pain point.
type RecommendedService struct {
	Service     string `json:"service"`
	Description string `json:"description"`
}

// LeadAnalysis is the analyzer stage's structured output. It fully replaces
// whatever the model returned as text; downstream stages only ever see a
// validated LeadAnalysis.
type LeadAnalysis struct {
	Name                string               `json:"name"`
	Language            Language             `json:"language"`
	Industry            Industry             `json:"industry"`
	BusinessContext     string               `json:"business_context"`
	Decision            FitDecision          `json:"decision"`
	Confidence          int                  `json:"confidence"`
	Justification       string               `json:"justification"`
	EmotionalState      EmotionalState       `json:"emotional_state"`
	UrgencyLevel        UrgencyLevel         `json:"urgency_level"`
	CompanyStage        CompanyStage         `json:"company_stage"`
	RecommendedServices []RecommendedService `json:"recommended_services,omitempty"`
}

// Validate checks the analysis against its schema: required fields present,
// every enum value a member of its closed set, confidence in [1,10]. The
// model's adherence to the instruction document is never trusted; this runs
// immediately after parsing. Pure check, no normalization.
func (a *LeadAnalysis) Validate() error {
	if a.Decision == "" {
		return fmt.Errorf("missing required field: decision")
	}
	if !contains(AllFitDecisions(), a.Decision) {
		return fmt.Errorf("decision %q not in %v", a.Decision, AllFitDecisions())
	}
	if a.Industry == "" {
		return fmt.Errorf("missing required field: industry")
	}
	if !contains(AllIndustries(), a.Industry) {
		return fmt.Errorf("industry %q not in closed industry list", a.Industry)
	}
	if a.Confidence < 1 || a.Confidence > 10 {
		return fmt.Errorf("confidence %d outside [1,10]", a.Confidence)
	}
	if strings.TrimSpace(a.Justification) == "" {
		return fmt.Errorf("missing required field: justification")
	}
	if a.EmotionalState == "" {
		return fmt.Errorf("missing required field: emotional_state")
	}
	if !contains(AllEmotionalStates(), a.EmotionalState) {
		return fmt.Errorf("emotional_state %q not in %v", a.EmotionalState, AllEmotionalStates())
	}
	if a.UrgencyLevel == "" {
		return fmt.Errorf("missing required field: urgency_level")
	}
	if !contains(AllUrgencyLevels(), a.UrgencyLevel) {
		return fmt.Errorf("urgency_level %q not in %v", a.UrgencyLevel, AllUrgencyLevels())
	}
	if a.CompanyStage == "" {
		return fmt.Errorf("missing required field: company_stage")
	}
	if !contains(AllCompanyStages(), a.CompanyStage) {
		return fmt.Errorf("company_stage %q not in %v", a.CompanyStage, AllCompanyStages())
	}
	return nil
}

// ConfidenceBand maps the 1-10 score to the band the composer keys its
// psychology technique selection off: high (8-10), medium (5-7), low (1-4).
func (a *LeadAnalysis) ConfidenceBand() ConfidenceLevel {
	switch {
	case a.Confidence >= 8:
		return ConfidenceHigh
	case a.Confidence >= 5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
