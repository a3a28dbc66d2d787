package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/curiogate/curiogate/internal/classify"
	"github.com/curiogate/curiogate/internal/genai"
	"github.com/curiogate/curiogate/internal/models"
	"github.com/curiogate/curiogate/internal/profile"
)

// User-facing messages for handled failure paths. Always short and friendly;
// raw provider errors are never rendered to the child.
const (
	connectivityMessage    = "Oops, I'm having trouble thinking right now. Give me a moment and ask me again!"
	alreadyUnlockedMessage = "You're all set! The screen is already unlocked."
)

// Settings is the narrow view of the settings collaborator the controller
// needs. Reads are individually fallible; a failure yields a neutral default,
// never a failed turn.
type Settings interface {
	GetChildProfile() (models.ChildProfile, error)
	GetSelectedInterests() ([]string, error)
}

// Engine is the conversation controller: it owns the Question, Understanding,
// Complete state machine and delegates all gating verdicts to the AI adapter.
// Not reentrant across concurrent turns of the same session.
type Engine struct {
	states   StateManager
	ai       genai.ClientInterface
	settings Settings
}

// NewEngine creates a conversation controller with its dependencies.
func NewEngine(states StateManager, ai genai.ClientInterface, settings Settings) *Engine {
	slog.Debug("Engine.NewEngine: creating controller")
	return &Engine{states: states, ai: ai, settings: settings}
}

// StartSession initializes a fresh Question-stage state for the session,
// discarding any previous state under the same ID.
func (e *Engine) StartSession(sessionID string) models.ConversationState {
	state := *models.NewConversationState()
	e.states.SaveState(sessionID, state)
	slog.Info("Engine.StartSession: session initialized", "sessionID", sessionID)
	return state
}

// ProcessTurn runs one turn of the gating conversation. It never returns an
// error: every failure path resolves to a friendly message with the Error
// flag set so the shell can log it.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID string, req models.TurnRequest) models.TurnResponse {
	state, ok := e.states.GetState(sessionID)
	if !ok {
		state = *models.NewConversationState()
	}
	band, interests := e.childContext()

	slog.Debug("Engine.ProcessTurn: turn started", "sessionID", sessionID, "stage", state.Stage, "turn", state.TurnIndex, "band", band)

	var resp models.TurnResponse
	switch state.Stage {
	case models.StageComplete:
		// Terminal for the session; unlock is signaled exactly once.
		resp = models.TurnResponse{Message: alreadyUnlockedMessage, Stage: models.StageComplete}
	case models.StageUnderstanding:
		if classify.IsNewQuestion(req.Utterance) {
			// Topic switch: discard pending state and treat the utterance as
			// a brand-new first-turn question.
			slog.Info("Engine.ProcessTurn: topic switch detected", "sessionID", sessionID)
			state.PendingQuestion = ""
			state.PendingAnswer = ""
			resp = e.handleQuestion(ctx, &state, req, band, interests, true)
		} else {
			resp = e.handleReply(ctx, &state, req, band)
		}
	default:
		// Question stage, plus recovery for any unknown stage value.
		if !models.IsValidStage(state.Stage) {
			slog.Error("Engine.ProcessTurn: unknown stage, resetting", "sessionID", sessionID, "stage", state.Stage)
			state.Reset()
		}
		resp = e.handleQuestion(ctx, &state, req, band, interests, state.TurnIndex == 0)
	}

	// State is stored only after the turn fully resolved.
	e.states.SaveState(sessionID, state)
	slog.Debug("Engine.ProcessTurn: turn finished", "sessionID", sessionID, "stage", resp.Stage, "unlock", resp.Unlock, "retry", resp.Retry, "error", resp.Error)
	return resp
}

// handleQuestion runs the Question-stage logic: reject nonsense with a
// coaching redirect, otherwise obtain an answer and move to Understanding.
func (e *Engine) handleQuestion(ctx context.Context, state *models.ConversationState, req models.TurnRequest, band models.AgeBand, interests []string, firstTurn bool) models.TurnResponse {
	result, err := e.ai.Answer(ctx, genai.AnswerRequest{
		Question:    req.Utterance,
		Band:        band,
		IsFirstTurn: firstTurn,
		TurnIndex:   state.TurnIndex,
		Interests:   interests,
		History:     req.History,
	})
	if err != nil {
		slog.Error("Engine.handleQuestion: answer failed, resetting session", "error", err)
		state.Reset()
		return models.TurnResponse{Message: connectivityMessage, Stage: models.StageQuestion, Error: true}
	}
	if result.Redirected {
		// Redirected junk does not count as a turn: the next genuine
		// question is still the session's opener.
		state.Stage = models.StageQuestion
		return models.TurnResponse{Message: result.Text, Stage: models.StageQuestion}
	}

	state.Stage = models.StageUnderstanding
	state.PendingQuestion = req.Utterance
	state.PendingAnswer = result.Text
	state.TurnIndex++

	usage := result.Usage
	return models.TurnResponse{Message: result.Text, Stage: models.StageUnderstanding, Usage: &usage}
}

// handleReply runs the Understanding-stage logic: evaluate the child's reply
// against the pending follow-up and unlock on an understood verdict. A reply
// with a question mark that does not start with an interrogative word is
// still evaluated as an answer, never as a new question.
func (e *Engine) handleReply(ctx context.Context, state *models.ConversationState, req models.TurnRequest, band models.AgeBand) models.TurnResponse {
	anchor := state.PendingQuestion
	if followUp, ok := classify.ExtractFollowUp(state.PendingAnswer); ok {
		anchor = followUp
	}

	eval := e.ai.Evaluate(ctx, genai.EvaluateRequest{
		FollowUpQuestion: anchor,
		PriorAnswer:      state.PendingAnswer,
		ChildReply:       req.Utterance,
		History:          req.History,
	})
	state.TurnIndex++

	if eval.Understood {
		state.Stage = models.StageComplete
		state.PendingQuestion = ""
		state.PendingAnswer = ""
		slog.Info("Engine.handleReply: understanding demonstrated, unlocking")
		return models.TurnResponse{
			Message: profile.PersonaFor(band).Congratulations,
			Stage:   models.StageComplete,
			Unlock:  true,
		}
	}

	suggestion := eval.Suggestion
	if suggestion == "" {
		suggestion = SuggestRetry(req.Utterance)
	}
	message := strings.TrimSpace(eval.Feedback + " " + suggestion)
	return models.TurnResponse{Message: message, Stage: models.StageUnderstanding, Retry: true}
}

// childContext reads the child's band and interests from settings, falling
// back to neutral defaults when the store is unavailable.
func (e *Engine) childContext() (models.AgeBand, []string) {
	var age *int
	childProfile, err := e.settings.GetChildProfile()
	if err != nil {
		slog.Warn("Engine.childContext: profile read failed, using defaults", "error", err)
	} else {
		age = childProfile.Age
	}

	interests, err := e.settings.GetSelectedInterests()
	if err != nil {
		slog.Warn("Engine.childContext: interests read failed, using none", "error", err)
		interests = nil
	}
	return profile.ResolveBand(age), interests
}
