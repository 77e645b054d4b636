package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/advancify/lead-engine/internal/model"
	"github.com/advancify/lead-engine/pkg/anthropic"
)

const analyzeUserPrompt = `Lead submission:
%s

Analyze this lead and return the classification JSON object.`

// Analyze runs the qualification stage: one model call with the fixed
// analyzer document, parsed and schema-checked before anything downstream
// sees it. A malformed or off-schema response is a hard failure; nothing
// is retried.
func (e *Engine) Analyze(ctx context.Context, lead *model.LeadSubmission) (*model.LeadAnalysis, error) {
	payload, err := json.Marshal(lead)
	if err != nil {
		return nil, &AIProcessingError{Stage: "analyze", Err: err}
	}

	resp, err := e.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(e.prompts.AnalyzerSystem),
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(analyzeUserPrompt, payload)},
		},
	})
	if err != nil {
		return nil, &AIProcessingError{Stage: "analyze", Err: err}
	}
	resp.Usage.LogCost(e.model, "analyze")

	text := cleanJSON(extractText(resp))

	var analysis model.LeadAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, &AIProcessingError{Stage: "analyze", Err: fmt.Errorf("response is not valid JSON: %w", err)}
	}

	// Pass-through fields come from the submission, not the model.
	analysis.Name = lead.Name
	analysis.Language = lead.PreferredLanguage
	if analysis.BusinessContext == "" {
		analysis.BusinessContext = lead.BusinessType
	}
	if analysis.CompanyStage == "" {
		analysis.CompanyStage = model.StageUnknown
	}

	if err := analysis.Validate(); err != nil {
		return nil, &AIProcessingError{Stage: "analyze", Err: fmt.Errorf("response failed schema validation: %w", err)}
	}

	zap.L().Info("lead analyzed",
		zap.String("email", lead.Email),
		zap.String("industry", string(analysis.Industry)),
		zap.String("decision", string(analysis.Decision)),
		zap.Int("confidence", analysis.Confidence),
	)

	return &analysis, nil
}

// extractText concatenates all text content blocks from a message response.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
