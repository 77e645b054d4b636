package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/advancify/lead-engine/internal/model"
	"github.com/advancify/lead-engine/internal/store"
	"github.com/advancify/lead-engine/pkg/anthropic"
	"github.com/advancify/lead-engine/pkg/msgraph"
)

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// --- Graph Mock ---

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendMail(ctx context.Context, recipient, subject, htmlBody string) error {
	args := m.Called(ctx, recipient, subject, htmlBody)
	return args.Error(0)
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ArchiveLead(ctx context.Context, rec *model.LeadRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockStore) SeenLead(ctx context.Context, dedupKey string) (bool, error) {
	args := m.Called(ctx, dedupKey)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) ListLeads(ctx context.Context, filter store.LeadFilter) ([]model.LeadRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeadRecord), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Interface compliance checks.
var (
	_ anthropic.Client = (*mockAnthropicClient)(nil)
	_ msgraph.Client   = (*mockMailer)(nil)
	_ store.Store      = (*mockStore)(nil)
)

// textResponse wraps a JSON payload in a single-block message response.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		ID:    "msg_test",
		Model: "claude-sonnet-4-5-20250929",
		Content: []anthropic.ContentBlock{
			{Type: "text", Text: text},
		},
		StopReason: "end_turn",
		Usage: anthropic.TokenUsage{
			InputTokens:  1200,
			OutputTokens: 300,
		},
	}
}
