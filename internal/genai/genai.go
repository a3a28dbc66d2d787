// Package genai provides the AI backend adapter for the gating conversation:
// a uniform interface over interchangeable language-model providers, with
// prompt construction, sequential retry with backoff, usage accounting, and
// deterministic fallbacks when a provider is unreachable.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/curiogate/curiogate/internal/classify"
	"github.com/curiogate/curiogate/internal/models"
)

// Default adapter configuration.
const (
	// DefaultMaxAttempts bounds sequential retries per provider call.
	DefaultMaxAttempts = 3
	// DefaultRetryBaseDelay is the first backoff interval; it doubles per attempt.
	DefaultRetryBaseDelay = time.Second
	// DefaultEvaluateTimeout bounds each evaluation call. Kept shorter than the
	// provider transport timeout so the adapter's timeout always wins and
	// resolves to the generous default.
	DefaultEvaluateTimeout = 20 * time.Second
	// DefaultCostPerMillionTokens is the blended cost estimate used for usage
	// accounting when the model has no specific entry.
	DefaultCostPerMillionTokens = 0.60
	// maxPromptInterests caps how many interests flavor the system prompt.
	maxPromptInterests = 3
)

// Provider is the narrow contract a language-model vendor must implement.
// Implementations normalize their own request/response shapes to plain text
// plus token usage.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, models.Usage, error)
}

// AnswerRequest carries everything needed to answer a child's question.
type AnswerRequest struct {
	Question    string
	Band        models.AgeBand
	IsFirstTurn bool
	TurnIndex   int
	Interests   []string
	History     []models.ConversationMessage
}

// AnswerResult is the normalized answer output.
type AnswerResult struct {
	Text  string
	Usage models.Usage
	// Redirected is true when the question was rejected as nonsense before
	// any network call.
	Redirected bool
}

// EvaluateRequest carries the material for judging a child's reply.
type EvaluateRequest struct {
	FollowUpQuestion string
	PriorAnswer      string
	ChildReply       string
	History          []models.ConversationMessage
}

// ClientInterface is the adapter contract consumed by the conversation
// controller. Evaluate never fails: unrecoverable errors resolve to a
// generous default because the worst acceptable failure mode is granting
// access, not denying it indefinitely.
type ClientInterface interface {
	Answer(ctx context.Context, req AnswerRequest) (AnswerResult, error)
	Evaluate(ctx context.Context, req EvaluateRequest) models.Evaluation
	Usage() models.UsageRecord
}

// Client implements ClientInterface over a Provider.
type Client struct {
	provider        Provider
	maxAttempts     int
	retryBaseDelay  time.Duration
	evaluateTimeout time.Duration
	costPerMillion  float64

	mu    sync.Mutex
	usage models.UsageRecord
}

// Answer obtains an age-calibrated answer ending in a follow-up question.
// Nonsensical questions short-circuit to a canned redirect with zero usage.
// Recoverable provider errors are retried; if the service stays unavailable
// the deterministic keyword fallback is used. Any other exhausted error
// propagates to the caller.
func (c *Client) Answer(ctx context.Context, req AnswerRequest) (AnswerResult, error) {
	if classify.IsNonsensical(req.Question) {
		slog.Debug("Client.Answer: nonsensical question short-circuited", "question_len", len(req.Question))
		return AnswerResult{Text: redirectMessage(req.Band), Redirected: true}, nil
	}

	systemPrompt := answerSystemPrompt(req.Band, req.Interests, req.IsFirstTurn)
	userPrompt := answerUserPrompt(req.Question, req.History)

	text, usage, err := c.completeWithRetry(ctx, systemPrompt, userPrompt)
	if err != nil {
		if isServiceUnavailable(err) {
			slog.Warn("Client.Answer: provider unavailable after retries, using fallback answer", "provider", c.provider.Name(), "error", err)
			return AnswerResult{Text: FallbackAnswer(req.Question)}, nil
		}
		slog.Error("Client.Answer: provider failed", "provider", c.provider.Name(), "error", err)
		return AnswerResult{}, fmt.Errorf("answer generation failed: %w", err)
	}

	c.recordUsage(usage, true)
	slog.Debug("Client.Answer: succeeded", "provider", c.provider.Name(), "tokens", usage.TotalTokens, "first_turn", req.IsFirstTurn)
	return AnswerResult{Text: strings.TrimSpace(text), Usage: usage}, nil
}

// Evaluate judges whether the child's reply demonstrates engagement with the
// pending follow-up question. The policy is maximally generous: any provider
// error, timeout, or malformed verdict resolves to understood.
func (c *Client) Evaluate(ctx context.Context, req EvaluateRequest) models.Evaluation {
	evalCtx, cancel := context.WithTimeout(ctx, c.evaluateTimeout)
	defer cancel()

	systemPrompt := evaluationSystemPrompt()
	userPrompt := evaluationUserPrompt(req.FollowUpQuestion, req.PriorAnswer, req.ChildReply)

	text, usage, err := c.completeWithRetry(evalCtx, systemPrompt, userPrompt)
	if err != nil {
		slog.Warn("Client.Evaluate: provider failed, defaulting to generous evaluation", "provider", c.provider.Name(), "error", err)
		return GenerousEvaluation()
	}
	c.recordUsage(usage, false)

	eval, err := parseEvaluation(text)
	if err != nil {
		slog.Warn("Client.Evaluate: malformed verdict, defaulting to generous evaluation", "error", err)
		return GenerousEvaluation()
	}
	slog.Debug("Client.Evaluate: verdict received", "understood", eval.Understood)
	return eval
}

// Usage returns a snapshot of the cumulative usage record.
func (c *Client) Usage() models.UsageRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}

// completeWithRetry runs a provider call with sequential retries and
// increasing backoff. Retries are never parallel so provider-side rate limits
// are respected and usage accounting stays exact.
func (c *Client) completeWithRetry(ctx context.Context, systemPrompt, userPrompt string) (string, models.Usage, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		text, usage, err := c.provider.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, usage, nil
		}
		lastErr = err
		if !isRecoverable(err) {
			slog.Error("Client.completeWithRetry: unrecoverable provider error", "provider", c.provider.Name(), "attempt", attempt+1, "error", err)
			return "", models.Usage{}, err
		}
		if attempt < c.maxAttempts-1 {
			delay := c.retryBaseDelay << uint(attempt)
			slog.Warn("Client.completeWithRetry: transient provider error, backing off", "provider", c.provider.Name(), "attempt", attempt+1, "delay", delay, "error", err)
			select {
			case <-ctx.Done():
				return "", models.Usage{}, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return "", models.Usage{}, fmt.Errorf("retries exhausted after %d attempts: %w", c.maxAttempts, lastErr)
}

// recordUsage applies a single accumulate-and-store update to the cumulative
// record. countConversation is set for answer calls only.
func (c *Client) recordUsage(usage models.Usage, countConversation bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.usage.TotalTokens += usage.TotalTokens
	c.usage.EstimatedCost += float64(usage.TotalTokens) / 1e6 * c.costPerMillion
	if countConversation {
		c.usage.ConversationCount++
	}
}

// parseEvaluation decodes the judge's structured verdict, tolerating markdown
// code fences around the JSON body.
func parseEvaluation(text string) (models.Evaluation, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var eval models.Evaluation
	if err := json.Unmarshal([]byte(cleaned), &eval); err != nil {
		return models.Evaluation{}, fmt.Errorf("failed to parse evaluation JSON: %w", err)
	}
	if eval.Feedback == "" {
		eval.Feedback = GenerousEvaluation().Feedback
	}
	return eval, nil
}
