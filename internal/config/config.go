// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/advancify/lead-engine/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Graph     GraphConfig     `yaml:"graph" mapstructure:"graph"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// GraphConfig holds the Microsoft Graph service principal and the sender
// mailbox used for outbound mail.
type GraphConfig struct {
	TenantID     string `yaml:"tenant_id" mapstructure:"tenant_id"`
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	Sender       string `yaml:"sender" mapstructure:"sender"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// PipelineConfig configures pipeline behavior.
type PipelineConfig struct {
	// NotAFitAction decides what happens when the analyzer rules a lead
	// not_a_fit: "soft_touch" composes and sends a brief goodwill message,
	// "suppress" skips composition and delivery entirely.
	NotAFitAction string `yaml:"not_a_fit_action" mapstructure:"not_a_fit_action"`

	// Dedup short-circuits re-submissions of the same email+description
	// before any external call is made.
	Dedup bool `yaml:"dedup" mapstructure:"dedup"`

	// PromptFile optionally overrides the built-in instruction documents.
	PromptFile string `yaml:"prompt_file" mapstructure:"prompt_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 3000)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("pipeline.not_a_fit_action", "soft_touch")
	v.SetDefault("pipeline.dedup", false)

	// Secrets arrive via environment; registering the keys lets
	// AutomaticEnv resolve them during Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("store.database_url", "")
	v.SetDefault("graph.tenant_id", "")
	v.SetDefault("graph.client_id", "")
	v.SetDefault("graph.client_secret", "")
	v.SetDefault("graph.sender", "")
	v.SetDefault("pipeline.prompt_file", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the secrets the pipeline needs are present.
func (c *Config) Validate() error {
	if c.Anthropic.Key == "" {
		return eris.New("config: anthropic.key is required (LEADENGINE_ANTHROPIC_KEY)")
	}
	if c.Store.Driver != "sqlite" && c.Store.DatabaseURL == "" {
		return eris.New("config: store.database_url is required (LEADENGINE_STORE_DATABASE_URL)")
	}
	if c.Graph.TenantID == "" || c.Graph.ClientID == "" || c.Graph.ClientSecret == "" {
		return eris.New("config: graph tenant_id, client_id and client_secret are required")
	}
	if c.Graph.Sender == "" {
		return eris.New("config: graph.sender mailbox is required (LEADENGINE_GRAPH_SENDER)")
	}
	switch c.Pipeline.NotAFitAction {
	case "soft_touch", "suppress":
	default:
		return eris.Errorf("config: pipeline.not_a_fit_action must be soft_touch or suppress, got %q", c.Pipeline.NotAFitAction)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
