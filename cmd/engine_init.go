package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/advancify/lead-engine/internal/pipeline"
	"github.com/advancify/lead-engine/internal/store"
	anthropicpkg "github.com/advancify/lead-engine/pkg/anthropic"
	"github.com/advancify/lead-engine/pkg/msgraph"
)

// engineEnv holds the initialized store, clients and pipeline engine used
// by the serve and process commands.
type engineEnv struct {
	Store  store.Store
	Engine *pipeline.Engine
}

// Close releases resources held by the engine environment.
func (ee *engineEnv) Close() {
	if ee.Store != nil {
		_ = ee.Store.Close()
	}
}

// initEngine validates config, opens and migrates the store, constructs the
// API clients, and wires the pipeline engine. Callers should defer
// env.Close().
func initEngine(ctx context.Context) (*engineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, cfg.Store.Pool)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	aiClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	mailer := msgraph.NewClient(msgraph.Credentials{
		TenantID:     cfg.Graph.TenantID,
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
	}, cfg.Graph.Sender)

	prompts := pipeline.DefaultPromptSet()
	if cfg.Pipeline.PromptFile != "" {
		prompts, err = pipeline.LoadPromptSet(cfg.Pipeline.PromptFile)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		zap.L().Info("prompt override loaded", zap.String("file", cfg.Pipeline.PromptFile))
	}

	eng := pipeline.New(aiClient, mailer, st, prompts, pipeline.Options{
		Model:         cfg.Anthropic.Model,
		MaxTokens:     cfg.Anthropic.MaxTokens,
		NotAFitAction: pipeline.NotAFitAction(cfg.Pipeline.NotAFitAction),
		Dedup:         cfg.Pipeline.Dedup,
	})

	return &engineEnv{Store: st, Engine: eng}, nil
}
