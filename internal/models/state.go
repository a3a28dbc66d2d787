// Package models defines conversation state structures for CurioGate sessions.
package models

// ConversationStage identifies where a session sits in the gating dialogue.
type ConversationStage string

const (
	// StageQuestion means the engine is waiting for the child's opening question.
	StageQuestion ConversationStage = "QUESTION"
	// StageUnderstanding means an answer was given and the engine is waiting
	// for the child's reply to the embedded follow-up question.
	StageUnderstanding ConversationStage = "UNDERSTANDING"
	// StageComplete means the child demonstrated engagement and the device
	// was unlocked. Terminal for the session.
	StageComplete ConversationStage = "COMPLETE"
)

// IsValidStage checks if the given stage is one of the known stages.
func IsValidStage(s ConversationStage) bool {
	switch s {
	case StageQuestion, StageUnderstanding, StageComplete:
		return true
	default:
		return false
	}
}

// ConversationState holds the per-session gating state. Exactly one is live
// per active session; it is mutated only by the conversation controller and
// reset on unlock, topic switch, or unrecoverable AI error.
type ConversationState struct {
	Stage           ConversationStage `json:"stage"`
	PendingQuestion string            `json:"pending_question,omitempty"`
	PendingAnswer   string            `json:"pending_answer,omitempty"`
	TurnIndex       int               `json:"turn_index"`
}

// NewConversationState returns the initial state for a fresh session.
func NewConversationState() *ConversationState {
	return &ConversationState{Stage: StageQuestion}
}

// Reset returns the state to its initial Question-stage values.
func (s *ConversationState) Reset() {
	s.Stage = StageQuestion
	s.PendingQuestion = ""
	s.PendingAnswer = ""
	s.TurnIndex = 0
}
