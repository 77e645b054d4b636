// Package intake validates raw form submissions before any external call is
// made. A submission that fails here never reaches the AI backend, the mail
// provider, or the store.
package intake

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/advancify/lead-engine/internal/model"
)

// ValidationError names the first offending field and the rule it violated.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%q is required", e.Field)
	case "email":
		return fmt.Sprintf("%q must be a valid email address", e.Field)
	case "oneof":
		return fmt.Sprintf("%q must be one of: English, Arabic", e.Field)
	default:
		return fmt.Sprintf("%q failed validation rule %q", e.Field, e.Rule)
	}
}

// submission is the unvalidated inbound shape. preferred_language defaults to
// English when absent; any other value outside the enum is rejected.
type submission struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Description       string `json:"description" validate:"required"`
	Phone             string `json:"phone"`
	BusinessType      string `json:"business_type"`
	PreferredLanguage string `json:"preferred_language" validate:"omitempty,oneof=English Arabic"`
	ScheduleTime      string `json:"schedule_time"`
}

// Validator normalizes and validates lead submissions.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs a Validator. Safe for concurrent use.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Parse decodes a JSON request body and validates it.
func (v *Validator) Parse(r io.Reader) (model.LeadSubmission, error) {
	var sub submission
	if err := json.NewDecoder(r).Decode(&sub); err != nil {
		return model.LeadSubmission{}, &ValidationError{Field: "body", Rule: "json"}
	}
	return v.normalize(sub)
}

// ParseMap validates an already-decoded input mapping.
func (v *Validator) ParseMap(raw map[string]any) (model.LeadSubmission, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return model.LeadSubmission{}, &ValidationError{Field: "body", Rule: "json"}
	}
	var sub submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return model.LeadSubmission{}, &ValidationError{Field: "body", Rule: "json"}
	}
	return v.normalize(sub)
}

func (v *Validator) normalize(sub submission) (model.LeadSubmission, error) {
	if err := v.validate.Struct(sub); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return model.LeadSubmission{}, &ValidationError{
				Field: jsonFieldName(first.Field()),
				Rule:  first.Tag(),
			}
		}
		return model.LeadSubmission{}, &ValidationError{Field: "body", Rule: "invalid"}
	}

	lead := model.LeadSubmission{
		Name:              sub.Name,
		Email:             sub.Email,
		Description:       sub.Description,
		Phone:             sub.Phone,
		BusinessType:      sub.BusinessType,
		PreferredLanguage: model.Language(sub.PreferredLanguage),
	}
	if lead.PreferredLanguage == "" {
		lead.PreferredLanguage = model.LanguageEnglish
	}

	if sub.ScheduleTime != "" {
		t, err := parseScheduleTime(sub.ScheduleTime)
		if err != nil {
			return model.LeadSubmission{}, &ValidationError{Field: "schedule_time", Rule: "datetime"}
		}
		lead.ScheduleTime = &t
	}

	return lead, nil
}

// parseScheduleTime accepts RFC 3339 and the date-only form intake widgets
// commonly send.
func parseScheduleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// jsonFieldName maps the validator's Go field names back to the wire names
// used in error messages.
var fieldNames = map[string]string{
	"Name":              "name",
	"Email":             "email",
	"Description":       "description",
	"Phone":             "phone",
	"BusinessType":      "business_type",
	"PreferredLanguage": "preferred_language",
	"ScheduleTime":      "schedule_time",
}

func jsonFieldName(goName string) string {
	if n, ok := fieldNames[goName]; ok {
		return n
	}
	return goName
}
