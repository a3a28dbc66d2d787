package genai

import (
	"github.com/curiogate/curiogate/internal/classify"
	"github.com/curiogate/curiogate/internal/models"
)

// fallbackAnswers are deterministic, keyword-matched answers used when the
// provider stays unavailable after retries. Each ends with exactly one
// follow-up question so the conversation can still proceed to evaluation.
var fallbackAnswers = map[classify.Topic]string{
	classify.TopicScience:    "Scientists figure things out by testing ideas over and over until the answer holds up. That's a great question to test someday! What would you try first to find out?",
	classify.TopicNature:     "Living things are full of clever tricks for surviving, and your question touches one of them. What have you noticed about it yourself?",
	classify.TopicTechnology: "Machines seem magical, but inside they follow very simple steps done very, very fast. How do you think it knows what to do next?",
	classify.TopicSpace:      "Space is enormous, and even scientists are still working out questions like yours. What do you imagine it would look like up close?",
	classify.TopicHistory:    "People long ago solved problems with clever ideas instead of machines. How do you think they managed it?",
	classify.TopicArt:        "Art works because our brains love patterns, colors, and surprises. What's your favorite thing to make or listen to, and why?",
	classify.TopicSocial:     "People are complicated, and questions like yours are how we understand each other better. What made you wonder about that?",
	classify.TopicPhilosophy: "That's a deep one, and thinkers have puzzled over it for ages without settling it. What's your own best guess?",
	classify.TopicGeneral:    "What a great thing to wonder about! Curious questions like that are how every discovery starts. What do you think the answer might be?",
}

// FallbackAnswer returns the deterministic answer for the question's primary
// topic. Pure: same question always yields the same answer.
func FallbackAnswer(question string) string {
	return fallbackAnswers[classify.PrimaryTopic(question)]
}

// GenerousEvaluation is the default verdict used whenever the judge cannot be
// reached or its verdict cannot be parsed. Failing to judge must never block
// the child.
func GenerousEvaluation() models.Evaluation {
	return models.Evaluation{
		Understood: true,
		Feedback:   "Great thinking! You really engaged with that question.",
	}
}
