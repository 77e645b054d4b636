package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("boom")

	var err error = &AIProcessingError{Stage: "analyze", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "analyze")

	err = &DeliveryError{Recipient: "sara@x.com", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "sara@x.com")

	err = &CredentialError{Err: cause}
	assert.ErrorIs(t, err, cause)

	err = &ArchivalError{Err: cause}
	assert.ErrorIs(t, err, cause)
}
