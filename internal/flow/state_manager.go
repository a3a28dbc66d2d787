// Package flow implements the conversation controller: the finite-state
// machine that sequences ask, answer, evaluate, and unlock for a gating
// session.
package flow

import (
	"log/slog"
	"sync"

	"github.com/curiogate/curiogate/internal/models"
)

// StateManager holds per-session conversation state. Conversation state is
// deliberately session-scoped and never persisted; a fresh session always
// starts in the Question stage.
type StateManager interface {
	GetState(sessionID string) (models.ConversationState, bool)
	SaveState(sessionID string, state models.ConversationState)
	ResetState(sessionID string)
}

// InMemoryStateManager implements StateManager with a mutex-guarded map.
type InMemoryStateManager struct {
	mu     sync.Mutex
	states map[string]models.ConversationState
}

// NewInMemoryStateManager creates an empty state manager.
func NewInMemoryStateManager() *InMemoryStateManager {
	slog.Debug("Creating InMemoryStateManager")
	return &InMemoryStateManager{states: make(map[string]models.ConversationState)}
}

// GetState returns a copy of the session's state. The copy keeps state
// unobservable mid-call; the controller stores the final value in one
// assignment after each turn resolves.
func (m *InMemoryStateManager) GetState(sessionID string) (models.ConversationState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[sessionID]
	return state, ok
}

// SaveState stores the session's state in a single assignment.
func (m *InMemoryStateManager) SaveState(sessionID string, state models.ConversationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[sessionID] = state
	slog.Debug("StateManager SaveState", "sessionID", sessionID, "stage", state.Stage)
}

// ResetState removes the session's state so the next turn starts fresh.
func (m *InMemoryStateManager) ResetState(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
	slog.Debug("StateManager ResetState", "sessionID", sessionID)
}
