package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// LeadRecord is the durable artifact written once per processed lead. It is
// owned entirely by the archival store and never mutated after insert.
type LeadRecord struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Industry        Industry    `json:"industry"`
	Decision        FitDecision `json:"decision"`
	ConfidenceScore int         `json:"confidence_score"`
	Justification   string      `json:"justification"`
	EmailSubject    string      `json:"email_subject"`
	EmailBody       string      `json:"email_body"`
	Language        Language    `json:"language"`
	DedupKey        string      `json:"dedup_key"`
	CreatedAt       time.Time   `json:"created_at"`
}

// DedupKey derives the idempotency key for a submission: the hex SHA-256 of
// email + description. Re-submissions of the same form content hash equal.
func DedupKey(email, description string) string {
	h := sha256.Sum256([]byte(email + description))
	return hex.EncodeToString(h[:])
}

// NewLeadRecord flattens a pipeline run into its archival form.
func NewLeadRecord(lead LeadSubmission, analysis *LeadAnalysis, email *ComposedEmail) LeadRecord {
	rec := LeadRecord{
		Name:            lead.Name,
		Email:           lead.Email,
		Industry:        analysis.Industry,
		Decision:        analysis.Decision,
		ConfidenceScore: analysis.Confidence,
		Justification:   analysis.Justification,
		Language:        lead.PreferredLanguage,
		DedupKey:        DedupKey(lead.Email, lead.Description),
	}
	if email != nil {
		rec.EmailSubject = email.Subject
		rec.EmailBody = email.Body
	}
	return rec
}
