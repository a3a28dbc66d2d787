// Package models defines the core data structures for CurioGate.
//
// It includes types for child profiles, conversation turns, evaluations, and
// usage accounting, which are shared across modules.
package models

import (
	"errors"
	"strings"
	"time"
)

// AgeBand groups children into developmental bands that drive vocabulary and
// question style.
type AgeBand string

const (
	// AgeBandYoung covers ages 5-8.
	AgeBandYoung AgeBand = "young"
	// AgeBandMiddle covers ages 9-12.
	AgeBandMiddle AgeBand = "middle"
	// AgeBandTeen covers ages 13-17 and is the default when age is unknown.
	AgeBandTeen AgeBand = "teen"
)

// ChildProfile is the child's settings record. It is owned by the settings
// store and read-only to the conversation engine.
type ChildProfile struct {
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Validation constants for input validation
const (
	// MaxUtteranceLength defines the maximum accepted length for a child utterance
	MaxUtteranceLength = 2048
	// MaxHistoryMessages defines the maximum number of history messages accepted per turn
	MaxHistoryMessages = 50
	// MaxInterestLabelLength defines the maximum accepted length for an interest label
	MaxInterestLabelLength = 64
	// MinPinLength defines the minimum accepted PIN length
	MinPinLength = 4
	// MaxPinLength defines the maximum accepted PIN length
	MaxPinLength = 12
)

// Error variables for better error handling and testability
var (
	ErrEmptyUtterance    = errors.New("utterance cannot be empty")
	ErrUtteranceTooLong  = errors.New("utterance exceeds maximum length")
	ErrTooManyMessages   = errors.New("history exceeds maximum message count")
	ErrInterestTooLong   = errors.New("interest label exceeds maximum length")
	ErrEmptyInterest     = errors.New("interest label cannot be empty")
	ErrInvalidPin        = errors.New("PIN must be 4-12 digits")
	ErrProfileAgeRange   = errors.New("age must be between 2 and 17")
	ErrNoProviderAPIKey  = errors.New("no API key configured for AI provider")
	ErrUnknownAIProvider = errors.New("unknown AI provider")
	ErrNoChoicesReturned = errors.New("no choices returned")
)

// ConversationMessage represents a single message in the conversation history.
type ConversationMessage struct {
	Role      string    `json:"role"`    // "child" or "assistant"
	Content   string    `json:"content"` // message content
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Evaluation is the judged verdict on a child's reply to the pending
// follow-up question. Produced once per Understanding-stage turn and
// immediately consumed to decide the transition.
type Evaluation struct {
	Understood bool   `json:"understood"`
	Feedback   string `json:"feedback"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Usage reports token consumption for a single completed provider call.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// UsageRecord is the cumulative usage accounting held by the AI adapter for
// the process lifetime. Monotonically increasing; reset only on restart.
type UsageRecord struct {
	TotalTokens       int64   `json:"total_tokens"`
	ConversationCount int64   `json:"conversation_count"`
	EstimatedCost     float64 `json:"estimated_cost"`
}

// TurnRequest is the shell collaborator's input for a single conversation turn.
type TurnRequest struct {
	Utterance string                `json:"utterance"`
	History   []ConversationMessage `json:"history,omitempty"`
}

// Validate performs validation on a TurnRequest.
func (r *TurnRequest) Validate() error {
	if strings.TrimSpace(r.Utterance) == "" {
		return ErrEmptyUtterance
	}
	if len(r.Utterance) > MaxUtteranceLength {
		return ErrUtteranceTooLong
	}
	if len(r.History) > MaxHistoryMessages {
		return ErrTooManyMessages
	}
	return nil
}

// TurnResponse is returned to the shell after each turn. The shell renders
// Message, clears input on Retry, and tears down the locked surface on Unlock.
type TurnResponse struct {
	Message string            `json:"message"`
	Stage   ConversationStage `json:"stage"`
	Unlock  bool              `json:"unlock,omitempty"`
	Retry   bool              `json:"retry,omitempty"`
	Error   bool              `json:"error,omitempty"`
	Usage   *Usage            `json:"usage,omitempty"`
}

// InterestUpdateRequest updates the child's ordered interest list.
type InterestUpdateRequest struct {
	Interests []string `json:"interests"`
}

// Validate performs validation on an InterestUpdateRequest.
func (r *InterestUpdateRequest) Validate() error {
	for _, label := range r.Interests {
		if strings.TrimSpace(label) == "" {
			return ErrEmptyInterest
		}
		if len(label) > MaxInterestLabelLength {
			return ErrInterestTooLong
		}
	}
	return nil
}

// PinRequest carries a PIN for set or verify operations.
type PinRequest struct {
	Pin string `json:"pin"`
}

// Validate checks the PIN is all digits within the accepted length range.
func (r *PinRequest) Validate() error {
	if len(r.Pin) < MinPinLength || len(r.Pin) > MaxPinLength {
		return ErrInvalidPin
	}
	for _, c := range r.Pin {
		if c < '0' || c > '9' {
			return ErrInvalidPin
		}
	}
	return nil
}

// ProfileUpdateRequest updates the stored child profile.
type ProfileUpdateRequest struct {
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Validate performs validation on a ProfileUpdateRequest.
func (r *ProfileUpdateRequest) Validate() error {
	if r.Age != nil && (*r.Age < 2 || *r.Age > 17) {
		return ErrProfileAgeRange
	}
	return nil
}

// EmergencyUnlock records a PIN-authorized bypass of the gating conversation.
type EmergencyUnlock struct {
	ID       int64     `json:"id"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred_at"`
}

// EmergencyUnlockRequest asks for a PIN-authorized bypass.
type EmergencyUnlockRequest struct {
	Pin    string `json:"pin"`
	Reason string `json:"reason,omitempty"`
}

// API Response types for consistent JSON responses

// APIStatus represents the status field of an API response.
type APIStatus string

const (
	// APIStatusOK indicates a successful API response.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates a failed API response.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
