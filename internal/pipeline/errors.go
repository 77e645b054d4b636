package pipeline

import "fmt"

// AIProcessingError wraps a failure of a generative step. Stage names the
// step that failed ("analyze" or "compose").
type AIProcessingError struct {
	Stage string
	Err   error
}

func (e *AIProcessingError) Error() string {
	return fmt.Sprintf("ai processing failed at %s: %v", e.Stage, e.Err)
}

func (e *AIProcessingError) Unwrap() error {
	return e.Err
}

// DeliveryError wraps a failure to send the composed email.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// CredentialError indicates the mail provider rejected our service
// credentials. Distinct from DeliveryError so operators can tell a config
// problem from a transient send failure.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("mail credential rejected: %v", e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// ArchivalError wraps a failure to persist the lead record after the
// email was already delivered.
type ArchivalError struct {
	Err error
}

func (e *ArchivalError) Error() string {
	return fmt.Sprintf("lead archival failed: %v", e.Err)
}

func (e *ArchivalError) Unwrap() error {
	return e.Err
}
