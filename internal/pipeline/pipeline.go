// Package pipeline sequences the lead processing stages: analyze, compose,
// deliver, archive. Stage N+1 never runs without stage N's output, and no
// record is archived after a failure.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/advancify/lead-engine/internal/model"
	"github.com/advancify/lead-engine/internal/store"
	"github.com/advancify/lead-engine/pkg/anthropic"
	"github.com/advancify/lead-engine/pkg/msgraph"
)

// NotAFitAction decides what happens to leads ruled not_a_fit.
type NotAFitAction string

const (
	// NotAFitSoftTouch composes and delivers a brief goodwill message.
	NotAFitSoftTouch NotAFitAction = "soft_touch"
	// NotAFitSuppress skips composition and delivery; only a minimal
	// record is archived.
	NotAFitSuppress NotAFitAction = "suppress"
)

// Options configures pipeline behavior.
type Options struct {
	Model         string
	MaxTokens     int64
	NotAFitAction NotAFitAction
	Dedup         bool
}

// Engine runs the four-stage lead pipeline. All collaborators are injected;
// the engine holds no global state and is safe for concurrent use by
// independent requests.
type Engine struct {
	ai        anthropic.Client
	mailer    msgraph.Client
	store     store.Store
	prompts   *PromptSet
	model     string
	maxTokens int64
	notAFit   NotAFitAction
	dedup     bool
}

// New constructs an Engine. A nil prompts falls back to the built-in
// instruction documents.
func New(ai anthropic.Client, mailer msgraph.Client, st store.Store, prompts *PromptSet, opts Options) *Engine {
	if prompts == nil {
		prompts = DefaultPromptSet()
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	notAFit := opts.NotAFitAction
	if notAFit == "" {
		notAFit = NotAFitSoftTouch
	}
	return &Engine{
		ai:        ai,
		mailer:    mailer,
		store:     st,
		prompts:   prompts,
		model:     opts.Model,
		maxTokens: maxTokens,
		notAFit:   notAFit,
		dedup:     opts.Dedup,
	}
}

// Metrics summarizes one pipeline run for the HTTP response. The composer's
// performance estimates are passed through so callers see the same metrics
// the email was generated with.
type Metrics struct {
	DurationMS           int64                       `json:"duration_ms"`
	Delivered            bool                        `json:"delivered"`
	Archived             bool                        `json:"archived"`
	Duplicate            bool                        `json:"duplicate"`
	EstimatedPerformance *model.EstimatedPerformance `json:"estimated_performance,omitempty"`
}

// Result carries the outputs of one pipeline run.
type Result struct {
	Analysis  *model.LeadAnalysis  `json:"analysis,omitempty"`
	Email     *model.ComposedEmail `json:"-"`
	Metrics   Metrics              `json:"metrics"`
	Duplicate bool                 `json:"-"`
}

// Process runs the full pipeline for one validated submission. Any stage
// failure aborts the rest; the record is written only after delivery
// succeeds (or is deliberately skipped by the suppress policy).
func (e *Engine) Process(ctx context.Context, lead *model.LeadSubmission) (*Result, error) {
	start := time.Now()
	log := zap.L().With(zap.String("email", lead.Email))

	if e.dedup {
		seen, err := e.store.SeenLead(ctx, model.DedupKey(lead.Email, lead.Description))
		if err != nil {
			return nil, &ArchivalError{Err: err}
		}
		if seen {
			log.Info("duplicate submission short-circuited")
			res := &Result{Duplicate: true}
			res.Metrics = Metrics{DurationMS: time.Since(start).Milliseconds(), Duplicate: true}
			return res, nil
		}
	}

	analysis, err := e.Analyze(ctx, lead)
	if err != nil {
		return nil, err
	}

	if analysis.Decision == model.FitNone && e.notAFit == NotAFitSuppress {
		log.Info("not_a_fit lead suppressed, archiving without email")
		rec := model.NewLeadRecord(*lead, analysis, nil)
		if err := e.store.ArchiveLead(ctx, &rec); err != nil {
			return nil, &ArchivalError{Err: err}
		}
		return &Result{
			Analysis: analysis,
			Metrics:  Metrics{DurationMS: time.Since(start).Milliseconds(), Archived: true},
		}, nil
	}

	email, err := e.Compose(ctx, lead, analysis)
	if err != nil {
		return nil, err
	}

	if err := e.mailer.SendMail(ctx, lead.Email, email.Subject, email.Body); err != nil {
		var tokErr *msgraph.TokenError
		if errors.As(err, &tokErr) {
			return nil, &CredentialError{Err: err}
		}
		return nil, &DeliveryError{Recipient: lead.Email, Err: err}
	}
	log.Info("email delivered", zap.String("subject", email.Subject))

	rec := model.NewLeadRecord(*lead, analysis, email)
	if err := e.store.ArchiveLead(ctx, &rec); err != nil {
		return nil, &ArchivalError{Err: err}
	}

	elapsed := time.Since(start)
	log.Info("lead processed",
		zap.String("decision", string(analysis.Decision)),
		zap.Duration("duration", elapsed),
	)

	return &Result{
		Analysis: analysis,
		Email:    email,
		Metrics: Metrics{
			DurationMS:           elapsed.Milliseconds(),
			Delivered:            true,
			Archived:             true,
			EstimatedPerformance: &email.EstimatedPerformance,
		},
	}, nil
}
