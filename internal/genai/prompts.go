package genai

import (
	"fmt"
	"strings"

	"github.com/curiogate/curiogate/internal/models"
	"github.com/curiogate/curiogate/internal/profile"
)

// redirectMessage is returned without any network call when the question is
// classified as nonsense. Phrased as coaching, never as an error.
func redirectMessage(band models.AgeBand) string {
	switch band {
	case models.AgeBandYoung:
		return "Hmm, I didn't quite catch that! Try asking me a real question, like \"Why is the sky blue?\""
	case models.AgeBandMiddle:
		return "I didn't understand that one. Ask me something you're curious about, like \"How do magnets work?\""
	default:
		return "That didn't look like a question. Ask me something you actually wonder about and let's go from there."
	}
}

// answerSystemPrompt builds the band-parameterized system instruction for the
// answer call. Interests flavor the examples only; they never gate.
func answerSystemPrompt(band models.AgeBand, interests []string, isFirstTurn bool) string {
	p := profile.PersonaFor(band)

	var b strings.Builder
	b.WriteString("You are a friendly guide answering a child's question before their device unlocks.\n")
	fmt.Fprintf(&b, "Voice: %s.\n", p.Voice)
	fmt.Fprintf(&b, "Style: %s.\n", p.Style)
	fmt.Fprintf(&b, "Engagement: %s.\n", p.EngagementGuidance)

	if len(interests) > 0 {
		capped := interests
		if len(capped) > maxPromptInterests {
			capped = capped[:maxPromptInterests]
		}
		fmt.Fprintf(&b, "When a comparison helps, draw on the child's interests: %s.\n", strings.Join(capped, ", "))
	}

	if isFirstTurn {
		b.WriteString("Length: punchy, 2-3 short sentences at most.\n")
	} else {
		b.WriteString("Length: up to 5 sentences.\n")
	}

	b.WriteString("Always end with exactly one follow-up question that invites the child to think, ")
	fmt.Fprintf(&b, "for example: %q. ", p.FollowUpPhrasing)
	b.WriteString("Never mention unlocking, screens, or rules. Never use words the child would need to look up.")
	return b.String()
}

// answerUserPrompt combines the question with a compact view of recent history.
func answerUserPrompt(question string, history []models.ConversationMessage) string {
	if len(history) == 0 {
		return question
	}
	var b strings.Builder
	b.WriteString("Earlier in this conversation:\n")
	for _, msg := range recentHistory(history, 6) {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	fmt.Fprintf(&b, "\nThe child now asks: %s", question)
	return b.String()
}

// evaluationSystemPrompt instructs the judge with the generous policy: the
// reply is an answer to the just-asked follow-up, not a new question, and
// topically-adjacent answers count.
func evaluationSystemPrompt() string {
	return `You judge whether a child engaged with a follow-up question. Be maximally generous: unless the reply is completely unrelated gibberish, understood must be true.
Rules:
- Treat the child's reply as an answer to the follow-up question that was just asked, NOT as a new question.
- Accept topically-adjacent answers. If asked how plants would perceive humans and the child talks about humans, that is a valid answer.
- Accept short answers, guesses, and answers phrased as questions.
- If the reply shows any thought connected to the topic at all, understood is true.
Respond with only a JSON object: {"understood": true/false, "feedback": "one short encouraging sentence", "suggestion": "one short hint, only when understood is false"}`
}

// evaluationUserPrompt lays out the material for the verdict.
func evaluationUserPrompt(followUp, priorAnswer, childReply string) string {
	return fmt.Sprintf("Follow-up question that was asked: %s\n\nThe answer it came from: %s\n\nThe child's reply: %s", followUp, priorAnswer, childReply)
}

func recentHistory(history []models.ConversationMessage, limit int) []models.ConversationMessage {
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
