package genai

import (
	"context"
	"fmt"
	"os"

	googleai "google.golang.org/genai"

	"github.com/curiogate/curiogate/internal/models"
)

// Default Gemini provider settings.
const (
	defaultGeminiModel           = "gemini-2.5-flash"
	defaultGeminiTemperature     = float32(0.7)
	defaultGeminiMaxOutputTokens = int32(400)
)

// generateService defines the minimal interface for Gemini content generation.
type generateService interface {
	GenerateContent(ctx context.Context, model string, contents []*googleai.Content, config *googleai.GenerateContentConfig) (*googleai.GenerateContentResponse, error)
}

// googleaiModels adapts the Gemini SDK client to generateService.
type googleaiModels struct {
	client *googleai.Client
}

var _ generateService = googleaiModels{}

func (m googleaiModels) GenerateContent(ctx context.Context, model string, contents []*googleai.Content, config *googleai.GenerateContentConfig) (*googleai.GenerateContentResponse, error) {
	return m.client.Models.GenerateContent(ctx, model, contents, config)
}

// GeminiProvider implements Provider using the Google Gemini API.
type GeminiProvider struct {
	generate        generateService
	model           string
	temperature     float32
	maxOutputTokens int32
}

// NewGeminiProvider initializes the Gemini provider. The API key falls back
// to the GEMINI_API_KEY environment variable.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", models.ErrNoProviderAPIKey)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	cli, err := googleai.NewClient(ctx, &googleai.ClientConfig{
		APIKey:  apiKey,
		Backend: googleai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		generate:        googleaiModels{client: cli},
		model:           model,
		temperature:     defaultGeminiTemperature,
		maxOutputTokens: defaultGeminiMaxOutputTokens,
	}, nil
}

// Name identifies the provider in logs and usage reports.
func (p *GeminiProvider) Name() string { return ProviderGemini }

// Complete runs a single generation and normalizes the response.
func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, models.Usage, error) {
	config := &googleai.GenerateContentConfig{
		SystemInstruction: &googleai.Content{Parts: []*googleai.Part{{Text: systemPrompt}}},
		Temperature:       googleai.Ptr(p.temperature),
		MaxOutputTokens:   p.maxOutputTokens,
	}
	resp, err := p.generate.GenerateContent(ctx, p.model, googleai.Text(userPrompt), config)
	if err != nil {
		return "", models.Usage{}, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", models.Usage{}, models.ErrNoChoicesReturned
	}
	var usage models.Usage
	if resp.UsageMetadata != nil {
		usage = models.Usage{
			PromptTokens:     int64(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int64(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return resp.Candidates[0].Content.Parts[0].Text, usage, nil
}
