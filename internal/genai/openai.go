package genai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/curiogate/curiogate/internal/models"
)

// Default OpenAI provider settings.
const (
	defaultOpenAIModel         = "gpt-4o-mini"
	defaultOpenAITemperature   = 0.7
	defaultOpenAIMaxCompletion = 400
)

// chatService defines the minimal interface for chat completions.
type chatService interface {
	Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error)
}

// openaiChat adapts the OpenAI SDK client to chatService. The SDK returns a
// *openai.ChatCompletion; the adapter flattens it to a value for mocking.
type openaiChat struct {
	client openai.Client
}

var _ chatService = openaiChat{}

func (c openaiChat) Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error) {
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil || resp == nil {
		return openai.ChatCompletion{}, err
	}
	return *resp, nil
}

// OpenAIProvider implements Provider using the OpenAI chat completions API.
type OpenAIProvider struct {
	chat                chatService
	model               string
	temperature         float64
	maxCompletionTokens int64
}

// NewOpenAIProvider initializes the OpenAI provider. The API key falls back
// to the OPENAI_API_KEY environment variable.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", models.ErrNoProviderAPIKey)
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		chat:                openaiChat{client: cli},
		model:               model,
		temperature:         defaultOpenAITemperature,
		maxCompletionTokens: defaultOpenAIMaxCompletion,
	}, nil
}

// Name identifies the provider in logs and usage reports.
func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

// Complete runs a single chat completion and normalizes the response.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, models.Usage, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature:         openai.Float(p.temperature),
		MaxCompletionTokens: openai.Int(p.maxCompletionTokens),
	}
	resp, err := p.chat.Create(ctx, params)
	if err != nil {
		return "", models.Usage{}, err
	}
	if len(resp.Choices) == 0 {
		return "", models.Usage{}, models.ErrNoChoicesReturned
	}
	usage := models.Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	return resp.Choices[0].Message.Content, usage, nil
}
