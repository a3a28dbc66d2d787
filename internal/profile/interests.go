package profile

import "strings"

// interestTopics maps interest labels from the settings store onto the fixed
// topic taxonomy used by the question banks. Unmapped interests are ignored
// for templating purposes.
var interestTopics = map[string]string{
	"dogs":        "animals",
	"cats":        "animals",
	"animals":     "animals",
	"horses":      "animals",
	"dinosaurs":   "animals",
	"space":       "space",
	"rockets":     "space",
	"planets":     "space",
	"stars":       "space",
	"robots":      "technology",
	"computers":   "technology",
	"video games": "technology",
	"coding":      "technology",
	"drawing":     "art",
	"painting":    "art",
	"music":       "art",
	"dancing":     "art",
	"crafts":      "art",
	"nature":      "nature",
	"plants":      "nature",
	"ocean":       "nature",
	"weather":     "nature",
	"bugs":        "nature",
	"science":     "science",
	"experiments": "science",
	"chemistry":   "science",
	"history":     "history",
	"castles":     "history",
	"pirates":     "history",
	"sports":      "social",
	"friends":     "social",
	"reading":     "philosophy",
	"puzzles":     "philosophy",
}

// MapInterest resolves an interest label to a question-bank topic. Returns
// false for labels outside the taxonomy.
func MapInterest(label string) (string, bool) {
	topic, ok := interestTopics[strings.ToLower(strings.TrimSpace(label))]
	return topic, ok
}

// MapInterests resolves an ordered interest list to the ordered, de-duplicated
// topics it covers, dropping unmapped labels.
func MapInterests(labels []string) []string {
	var topics []string
	seen := make(map[string]bool)
	for _, label := range labels {
		topic, ok := MapInterest(label)
		if !ok || seen[topic] {
			continue
		}
		seen[topic] = true
		topics = append(topics, topic)
	}
	return topics
}
