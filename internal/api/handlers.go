// Package api provides HTTP handlers for CurioGate conversation endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/curiogate/curiogate/internal/models"
	"github.com/curiogate/curiogate/internal/profile"
)

// DefaultSuggestionLimit caps the suggested-question list shown before a
// conversation starts.
const DefaultSuggestionLimit = 6

// sessionStartResult is returned when a new session begins.
type sessionStartResult struct {
	SessionID          string                   `json:"session_id"`
	Stage              models.ConversationStage `json:"stage"`
	SuggestedQuestions []string                 `json:"suggested_questions"`
}

// apiTurnRequest wraps the controller's turn request with a session ID.
type apiTurnRequest struct {
	SessionID string                       `json:"session_id"`
	Utterance string                       `json:"utterance"`
	History   []models.ConversationMessage `json:"history,omitempty"`
}

// startSessionHandler handles POST /session
func (s *Server) startSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.startSessionHandler: processing request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := uuid.NewString()
	state := s.engine.StartSession(sessionID)

	band, interests := s.childContext()
	result := sessionStartResult{
		SessionID:          sessionID,
		Stage:              state.Stage,
		SuggestedQuestions: profile.SuggestedQuestions(band, interests, DefaultSuggestionLimit),
	}
	slog.Info("Server.startSessionHandler: session started", "sessionID", sessionID, "band", band)
	writeJSONResponse(w, http.StatusOK, models.Success(result))
}

// turnHandler handles POST /conversation/turn
func (s *Server) turnHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.turnHandler: processing turn request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req apiTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.turnHandler: failed to decode JSON", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	turn := models.TurnRequest{Utterance: req.Utterance, History: req.History}
	if err := turn.Validate(); err != nil {
		slog.Warn("Server.turnHandler: validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := s.engine.ProcessTurn(r.Context(), req.SessionID, turn)
	slog.Info("Server.turnHandler: turn processed", "sessionID", req.SessionID, "stage", resp.Stage, "unlock", resp.Unlock, "retry", resp.Retry, "error", resp.Error)
	writeJSONResponse(w, http.StatusOK, models.Success(resp))
}

// suggestionsHandler handles GET /conversation/suggestions
func (s *Server) suggestionsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.suggestionsHandler: processing request", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	limit := DefaultSuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	band, interests := s.childContext()
	questions := profile.SuggestedQuestions(band, interests, limit)
	writeJSONResponse(w, http.StatusOK, models.Success(questions))
}

// usageHandler handles GET /usage
func (s *Server) usageHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.usageHandler: processing request", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.ai.Usage()))
}

// childContext reads band and interests from the settings store with neutral
// defaults on failure.
func (s *Server) childContext() (models.AgeBand, []string) {
	var age *int
	childProfile, err := s.st.GetChildProfile()
	if err != nil {
		slog.Warn("Server.childContext: profile read failed, using defaults", "error", err)
	} else {
		age = childProfile.Age
	}
	interests, err := s.st.GetSelectedInterests()
	if err != nil {
		slog.Warn("Server.childContext: interests read failed, using none", "error", err)
		interests = nil
	}
	return profile.ResolveBand(age), interests
}
