package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/advancify/lead-engine/internal/model"
	"github.com/advancify/lead-engine/internal/pipeline"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, lead *model.LeadSubmission) (*pipeline.Result, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Result), args.Error(1)
}

var _ leadProcessor = (*mockProcessor)(nil)

const validBody = `{
	"name": "Sara",
	"email": "sara@x.com",
	"description": "We are drowning in WhatsApp leads, need 24/7 coverage",
	"preferred_language": "English"
}`

func successResult() *pipeline.Result {
	return &pipeline.Result{
		Analysis: &model.LeadAnalysis{
			Name:           "Sara",
			Language:       model.LanguageEnglish,
			Industry:       model.IndustryEcommerce,
			Decision:       model.FitGood,
			Confidence:     9,
			Justification:  "clear stated problem",
			EmotionalState: model.EmotionOverwhelmed,
			UrgencyLevel:   model.UrgencyHigh,
			CompanyStage:   model.StageGrowth,
		},
		Metrics: pipeline.Metrics{
			DurationMS: 1200,
			Delivered:  true,
			Archived:   true,
			EstimatedPerformance: &model.EstimatedPerformance{
				OpenRate:           "62%",
				ReplyRate:          "18%",
				MeetingProbability: "9%",
			},
		},
	}
}

func postLead(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestProcessLead_Success(t *testing.T) {
	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.MatchedBy(func(lead *model.LeadSubmission) bool {
		return lead.Email == "sara@x.com" && lead.PreferredLanguage == model.LanguageEnglish
	})).Return(successResult(), nil).Once()

	rec := postLead(t, newRouter(proc), "/api/process-lead", validBody)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool               `json:"success"`
		Analysis model.LeadAnalysis `json:"analysis"`
		Metrics  pipeline.Metrics   `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, model.FitGood, resp.Analysis.Decision)
	assert.True(t, resp.Metrics.Delivered)
	require.NotNil(t, resp.Metrics.EstimatedPerformance)
	assert.Equal(t, model.Percentage("62%"), resp.Metrics.EstimatedPerformance.OpenRate)
	assert.Equal(t, model.Percentage("9%"), resp.Metrics.EstimatedPerformance.MeetingProbability)
	proc.AssertExpectations(t)
}

func TestProcessLead_LegacyAlias(t *testing.T) {
	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.Anything).Return(successResult(), nil).Once()

	rec := postLead(t, newRouter(proc), "/process", validBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	proc.AssertExpectations(t)
}

func TestProcessLead_ValidationFailure(t *testing.T) {
	proc := new(mockProcessor)

	rec := postLead(t, newRouter(proc), "/api/process-lead", `{"name": "Sara", "description": "help"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "email")
	// No external work happens for rejected input.
	proc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestProcessLead_WorkflowError(t *testing.T) {
	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.Anything).
		Return(nil, &pipeline.AIProcessingError{Stage: "analyze", Err: errors.New("response is not valid JSON")}).Once()

	rec := postLead(t, newRouter(proc), "/api/process-lead", validBody)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Workflow Error", resp["error"])
	assert.Contains(t, resp["details"], "analyze")
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newRouter(new(mockProcessor)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestFormatLeadsList(t *testing.T) {
	var sb strings.Builder
	formatLeadsList(&sb, []model.LeadRecord{
		{
			Name:            "Sara",
			Email:           "sara@x.com",
			Industry:        model.IndustryEcommerce,
			Decision:        model.FitGood,
			ConfidenceScore: 9,
			EmailSubject:    "24/7 coverage",
		},
	})

	out := sb.String()
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "sara@x.com")
	assert.Contains(t, out, "good_fit")
}
