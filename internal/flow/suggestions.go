package flow

import "github.com/curiogate/curiogate/internal/classify"

// DefaultSuggestion is the fallback retry hint when no better suggestion is
// available.
const DefaultSuggestion = "Try again?"

// SuggestRetry recommends a retry hint calibrated to how developed the child's
// reply was. A reply that was already complex just gets the plain fallback.
func SuggestRetry(childReply string) string {
	switch classify.AssessComplexity(childReply) {
	case classify.ComplexitySimple:
		return "Try adding one more idea about why you think that!"
	case classify.ComplexityDeveloping:
		return "You're close! Tell me a little more about your idea."
	default:
		return DefaultSuggestion
	}
}
