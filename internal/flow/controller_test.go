package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/curiogate/curiogate/internal/genai"
	"github.com/curiogate/curiogate/internal/models"
	"github.com/curiogate/curiogate/internal/profile"
)

// mockAI scripts the AI adapter for controller tests.
type mockAI struct {
	answerResult  genai.AnswerResult
	answerErr     error
	evaluation    models.Evaluation
	answerCalls   int
	evaluateCalls int
	lastAnswer    genai.AnswerRequest
	lastEvaluate  genai.EvaluateRequest
}

func (m *mockAI) Answer(ctx context.Context, req genai.AnswerRequest) (genai.AnswerResult, error) {
	m.answerCalls++
	m.lastAnswer = req
	return m.answerResult, m.answerErr
}

func (m *mockAI) Evaluate(ctx context.Context, req genai.EvaluateRequest) models.Evaluation {
	m.evaluateCalls++
	m.lastEvaluate = req
	return m.evaluation
}

func (m *mockAI) Usage() models.UsageRecord { return models.UsageRecord{} }

// mockSettings scripts the settings collaborator.
type mockSettings struct {
	profile      models.ChildProfile
	profileErr   error
	interests    []string
	interestsErr error
}

func (m *mockSettings) GetChildProfile() (models.ChildProfile, error) {
	return m.profile, m.profileErr
}

func (m *mockSettings) GetSelectedInterests() ([]string, error) {
	return m.interests, m.interestsErr
}

func intPtr(v int) *int { return &v }

func newTestEngine(ai *mockAI, settings *mockSettings) *Engine {
	return NewEngine(NewInMemoryStateManager(), ai, settings)
}

func TestStartSessionInitializesQuestionStage(t *testing.T) {
	engine := newTestEngine(&mockAI{}, &mockSettings{})

	state := engine.StartSession("s1")
	if state.Stage != models.StageQuestion {
		t.Errorf("Expected Question stage, got %v", state.Stage)
	}
	if state.TurnIndex != 0 {
		t.Errorf("Expected turn index 0, got %d", state.TurnIndex)
	}
}

func TestProcessTurnFullUnlockRoundTrip(t *testing.T) {
	ai := &mockAI{
		answerResult: genai.AnswerResult{
			Text:  "Plants grow toward light. What do you think helps them sense it?",
			Usage: models.Usage{TotalTokens: 60},
		},
		evaluation: models.Evaluation{Understood: true, Feedback: "Exactly!"},
	}
	settings := &mockSettings{profile: models.ChildProfile{Age: intPtr(7)}}
	engine := newTestEngine(ai, settings)
	engine.StartSession("s1")

	// Turn 1: question answered, move to Understanding
	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why do plants grow toward light?"})
	if resp.Stage != models.StageUnderstanding {
		t.Fatalf("Expected Understanding stage, got %v", resp.Stage)
	}
	if resp.Unlock || resp.Retry || resp.Error {
		t.Error("Expected a plain answer turn")
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 60 {
		t.Error("Expected usage attached to the answer turn")
	}
	if !ai.lastAnswer.IsFirstTurn {
		t.Error("Expected first turn flag on the opening question")
	}

	// Turn 2: reply evaluated, unlock granted
	resp = engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "maybe their leaves feel the sun"})
	if !resp.Unlock {
		t.Fatal("Expected unlock on understood reply")
	}
	if resp.Stage != models.StageComplete {
		t.Errorf("Expected Complete stage, got %v", resp.Stage)
	}
	if resp.Message != profile.PersonaFor(models.AgeBandYoung).Congratulations {
		t.Errorf("Expected young-band congratulations, got %q", resp.Message)
	}
	// The anchor is the extracted follow-up, not the child's original question
	if ai.lastEvaluate.FollowUpQuestion != "What do you think helps them sense it?" {
		t.Errorf("Expected extracted follow-up as anchor, got %q", ai.lastEvaluate.FollowUpQuestion)
	}

	// Turn 3: session is terminal, unlock signaled exactly once
	resp = engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "hello again"})
	if resp.Unlock {
		t.Error("Unlock must be signaled exactly once")
	}
	if resp.Stage != models.StageComplete {
		t.Errorf("Expected Complete stage to persist, got %v", resp.Stage)
	}
	if resp.Message != alreadyUnlockedMessage {
		t.Errorf("Expected already-unlocked message, got %q", resp.Message)
	}
}

func TestProcessTurnRetryOnNotUnderstood(t *testing.T) {
	ai := &mockAI{
		answerResult: genai.AnswerResult{Text: "Bees dance to share directions. Why do you think they dance?"},
		evaluation:   models.Evaluation{Understood: false, Feedback: "Not quite.", Suggestion: "Think about how bees talk."},
	}
	engine := newTestEngine(ai, &mockSettings{})
	engine.StartSession("s1")

	engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why do bees dance?"})
	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "rocks"})

	if !resp.Retry {
		t.Fatal("Expected retry flag for a not-understood reply")
	}
	if resp.Unlock {
		t.Error("Retry turn must not unlock")
	}
	if resp.Stage != models.StageUnderstanding {
		t.Errorf("Expected to stay in Understanding, got %v", resp.Stage)
	}
	if !strings.Contains(resp.Message, "Not quite.") || !strings.Contains(resp.Message, "Think about how bees talk.") {
		t.Errorf("Expected feedback plus suggestion, got %q", resp.Message)
	}

	// A further reply is evaluated again, not treated as a new question
	ai.evaluation = models.Evaluation{Understood: true, Feedback: "There you go!"}
	resp = engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "they wiggle to point at flowers"})
	if !resp.Unlock {
		t.Error("Expected unlock after an understood retry")
	}
}

func TestProcessTurnRetryFallsBackToHeuristicSuggestion(t *testing.T) {
	ai := &mockAI{
		answerResult: genai.AnswerResult{Text: "The moon pulls the sea. Can you guess what that pull is called?"},
		evaluation:   models.Evaluation{Understood: false, Feedback: "Hmm."},
	}
	engine := newTestEngine(ai, &mockSettings{})
	engine.StartSession("s1")

	engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why are there tides?"})
	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "no"})

	if !resp.Retry {
		t.Fatal("Expected retry flag")
	}
	if !strings.Contains(resp.Message, SuggestRetry("no")) {
		t.Errorf("Expected heuristic suggestion in %q", resp.Message)
	}
}

func TestProcessTurnAnswerErrorResetsSession(t *testing.T) {
	ai := &mockAI{answerErr: errors.New("answer generation failed: invalid api key")}
	engine := newTestEngine(ai, &mockSettings{})
	engine.StartSession("s1")

	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why is the sky blue?"})
	if !resp.Error {
		t.Fatal("Expected error flag")
	}
	if resp.Message != connectivityMessage {
		t.Errorf("Expected friendly connectivity message, got %q", resp.Message)
	}
	if resp.Stage != models.StageQuestion {
		t.Errorf("Expected reset to Question stage, got %v", resp.Stage)
	}

	// Session recovers: the next turn asks again from scratch
	ai.answerErr = nil
	ai.answerResult = genai.AnswerResult{Text: "Blue light scatters most. What other colors do you see at sunset?"}
	resp = engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why is the sky blue?"})
	if resp.Error {
		t.Error("Expected recovery on the following turn")
	}
	if resp.Stage != models.StageUnderstanding {
		t.Errorf("Expected Understanding after recovery, got %v", resp.Stage)
	}
	if !ai.lastAnswer.IsFirstTurn {
		t.Error("Expected the recovery question to still count as the first turn")
	}
}

func TestProcessTurnRedirectStaysInQuestionStage(t *testing.T) {
	ai := &mockAI{answerResult: genai.AnswerResult{Text: "Try asking me a real question!", Redirected: true}}
	engine := newTestEngine(ai, &mockSettings{})
	engine.StartSession("s1")

	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "asdf"})
	if resp.Stage != models.StageQuestion {
		t.Errorf("Expected to stay in Question stage after redirect, got %v", resp.Stage)
	}
	if resp.Unlock || resp.Retry || resp.Error {
		t.Error("Redirect is a plain coaching turn")
	}

	// A redirected turn is not counted: the next genuine question still gets
	// first-turn treatment.
	ai.answerResult = genai.AnswerResult{Text: "Blue light scatters most. What colors do you see at sunset?"}
	engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why is the sky blue?"})
	if !ai.lastAnswer.IsFirstTurn {
		t.Error("Expected first-turn treatment after a redirect")
	}
}

func TestProcessTurnTopicSwitch(t *testing.T) {
	ai := &mockAI{
		answerResult: genai.AnswerResult{Text: "Rain falls when clouds get heavy. What do you think clouds are made of?"},
	}
	engine := newTestEngine(ai, &mockSettings{})
	engine.StartSession("s1")

	engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why does it rain?"})

	// An interrogative utterance in Understanding starts a fresh question
	ai.answerResult = genai.AnswerResult{Text: "Snow forms when drops freeze. Have you ever caught a snowflake?"}
	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "What makes snow?"})

	if ai.evaluateCalls != 0 {
		t.Error("Topic switch must skip evaluation")
	}
	if ai.answerCalls != 2 {
		t.Errorf("Expected a second answer call, got %d", ai.answerCalls)
	}
	if !ai.lastAnswer.IsFirstTurn {
		t.Error("Topic switch should be treated as a fresh first turn")
	}
	if resp.Stage != models.StageUnderstanding {
		t.Errorf("Expected Understanding after the new answer, got %v", resp.Stage)
	}
}

func TestProcessTurnClarifyingQuestionIsEvaluated(t *testing.T) {
	ai := &mockAI{
		answerResult: genai.AnswerResult{Text: "Cheetahs are built for sprinting. How fast do you think they run?"},
		evaluation:   models.Evaluation{Understood: true, Feedback: "Good guess!"},
	}
	engine := newTestEngine(ai, &mockSettings{})
	engine.StartSession("s1")

	engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why are cheetahs fast?"})

	// Contains '?' but does not start with an interrogative word
	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "do you mean really fast?"})
	if ai.evaluateCalls != 1 {
		t.Errorf("Expected the clarifying question to be evaluated, got %d evaluate calls", ai.evaluateCalls)
	}
	if ai.answerCalls != 1 {
		t.Errorf("Expected no new answer call, got %d", ai.answerCalls)
	}
	if !resp.Unlock {
		t.Error("Expected unlock on the understood verdict")
	}
}

func TestProcessTurnAnchorFallsBackToPendingQuestion(t *testing.T) {
	// Answer without any question mark: the child's original question anchors
	ai := &mockAI{
		answerResult: genai.AnswerResult{Text: "Rain falls when clouds get heavy."},
		evaluation:   models.Evaluation{Understood: true, Feedback: "Nice!"},
	}
	engine := newTestEngine(ai, &mockSettings{})
	engine.StartSession("s1")

	engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why does it rain?"})
	engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "heavy clouds"})

	if ai.lastEvaluate.FollowUpQuestion != "Why does it rain?" {
		t.Errorf("Expected pending question as anchor, got %q", ai.lastEvaluate.FollowUpQuestion)
	}
}

func TestProcessTurnUnknownSessionStartsFresh(t *testing.T) {
	ai := &mockAI{answerResult: genai.AnswerResult{Text: "Stars are giant balls of gas. What do you think keeps them burning?"}}
	engine := newTestEngine(ai, &mockSettings{})

	// No StartSession call; the turn must still resolve
	resp := engine.ProcessTurn(context.Background(), "ghost", models.TurnRequest{Utterance: "What are stars?"})
	if resp.Stage != models.StageUnderstanding {
		t.Errorf("Expected Understanding for an unseeded session, got %v", resp.Stage)
	}
	if !ai.lastAnswer.IsFirstTurn {
		t.Error("Expected first-turn treatment for an unseeded session")
	}
}

func TestChildContextSettingsFailuresUseDefaults(t *testing.T) {
	ai := &mockAI{answerResult: genai.AnswerResult{Text: "Short answer. What do you think?"}}
	settings := &mockSettings{
		profileErr:   errors.New("db locked"),
		interestsErr: errors.New("db locked"),
	}
	engine := newTestEngine(ai, settings)
	engine.StartSession("s1")

	resp := engine.ProcessTurn(context.Background(), "s1", models.TurnRequest{Utterance: "Why is water wet?"})
	if resp.Error {
		t.Error("Settings failures must not fail the turn")
	}
	if ai.lastAnswer.Band != models.AgeBandTeen {
		t.Errorf("Expected neutral teen band default, got %v", ai.lastAnswer.Band)
	}
	if ai.lastAnswer.Interests != nil {
		t.Errorf("Expected no interests on read failure, got %v", ai.lastAnswer.Interests)
	}
}
