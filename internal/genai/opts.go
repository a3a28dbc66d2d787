package genai

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/curiogate/curiogate/internal/models"
)

// Provider names accepted by the factory.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Opts holds configuration options for the AI adapter.
type Opts struct {
	Provider        string
	APIKey          string
	Model           string
	MaxAttempts     int
	RetryBaseDelay  time.Duration
	EvaluateTimeout time.Duration
	CostPerMillion  float64
}

// Option defines a configuration option for the AI adapter.
type Option func(*Opts)

// WithProvider selects the language-model provider (openai or gemini).
func WithProvider(name string) Option {
	return func(o *Opts) { o.Provider = name }
}

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithEvaluateTimeout overrides the bounded evaluation timeout.
func WithEvaluateTimeout(d time.Duration) Option {
	return func(o *Opts) { o.EvaluateTimeout = d }
}

// WithMaxAttempts overrides the retry bound.
func WithMaxAttempts(n int) Option {
	return func(o *Opts) { o.MaxAttempts = n }
}

// NewClient constructs the adapter with the configured provider. Providers are
// interchangeable behind the ClientInterface contract; selection happens here
// at startup, never by inheritance.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Provider == "" {
		cfg.Provider = os.Getenv("CURIOGATE_AI_PROVIDER")
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if cfg.EvaluateTimeout <= 0 {
		cfg.EvaluateTimeout = DefaultEvaluateTimeout
	}
	if cfg.CostPerMillion <= 0 {
		cfg.CostPerMillion = DefaultCostPerMillionTokens
	}

	var provider Provider
	var err error
	switch cfg.Provider {
	case ProviderOpenAI:
		provider, err = NewOpenAIProvider(cfg.APIKey, cfg.Model)
	case ProviderGemini:
		provider, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	default:
		slog.Error("NewClient: unknown AI provider", "provider", cfg.Provider)
		return nil, models.ErrUnknownAIProvider
	}
	if err != nil {
		return nil, err
	}

	slog.Info("NewClient: AI adapter initialized", "provider", provider.Name(), "max_attempts", cfg.MaxAttempts, "evaluate_timeout", cfg.EvaluateTimeout)
	return &Client{
		provider:        provider,
		maxAttempts:     cfg.MaxAttempts,
		retryBaseDelay:  cfg.RetryBaseDelay,
		evaluateTimeout: cfg.EvaluateTimeout,
		costPerMillion:  cfg.CostPerMillion,
	}, nil
}

// NewClientWithProvider wires an adapter around an already-built provider.
// Used by tests and by callers that construct providers directly.
func NewClientWithProvider(provider Provider) *Client {
	return &Client{
		provider:        provider,
		maxAttempts:     DefaultMaxAttempts,
		retryBaseDelay:  DefaultRetryBaseDelay,
		evaluateTimeout: DefaultEvaluateTimeout,
		costPerMillion:  DefaultCostPerMillionTokens,
	}
}
