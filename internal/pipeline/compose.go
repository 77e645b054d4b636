package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/advancify/lead-engine/internal/model"
	"github.com/advancify/lead-engine/pkg/anthropic"
)

const composeUserPrompt = `Lead and analysis:
%s

Write the first-touch email and return the email JSON object.`

// Compose runs the email writing stage. The persona document stays fixed
// so it caches; the lead and its analysis travel in the user prompt.
func (e *Engine) Compose(ctx context.Context, lead *model.LeadSubmission, analysis *model.LeadAnalysis) (*model.ComposedEmail, error) {
	payload, err := json.Marshal(struct {
		Lead     *model.LeadSubmission `json:"lead"`
		Analysis *model.LeadAnalysis   `json:"analysis"`
	}{lead, analysis})
	if err != nil {
		return nil, &AIProcessingError{Stage: "compose", Err: err}
	}

	resp, err := e.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(e.prompts.ComposerSystem),
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(composeUserPrompt, payload)},
		},
	})
	if err != nil {
		return nil, &AIProcessingError{Stage: "compose", Err: err}
	}
	resp.Usage.LogCost(e.model, "compose")

	text := cleanJSON(extractText(resp))

	var email model.ComposedEmail
	if err := json.Unmarshal([]byte(text), &email); err != nil {
		return nil, &AIProcessingError{Stage: "compose", Err: fmt.Errorf("response is not valid JSON: %w", err)}
	}

	if err := email.Validate(lead.PreferredLanguage); err != nil {
		return nil, &AIProcessingError{Stage: "compose", Err: fmt.Errorf("response failed schema validation: %w", err)}
	}

	zap.L().Info("email composed",
		zap.String("email", lead.Email),
		zap.String("subject", email.Subject),
		zap.String("confidence_level", string(email.ConfidenceLevel)),
		zap.Strings("techniques", email.PsychologyTechniques),
	)

	return &email, nil
}
