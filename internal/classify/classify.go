package classify

import (
	"strings"
)

// Level is a coarse three-step score used for both engagement and complexity.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ComplexityLevel describes how developed a child's reply is.
type ComplexityLevel string

const (
	ComplexitySimple     ComplexityLevel = "simple"
	ComplexityDeveloping ComplexityLevel = "developing"
	ComplexityComplex    ComplexityLevel = "complex"
)

// IsNonsensical reports whether the trimmed text is junk input: too short,
// letter-free, keyboard mashing, or a known filler token. It errs on the side
// of letting borderline input through as a real question.
func IsNonsensical(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 {
		return true
	}
	if fillerTokens[strings.ToLower(strings.Trim(trimmed, ".!?,"))] {
		return true
	}
	if hasLongRun(trimmed, 4) {
		return true
	}
	for _, pattern := range junkPatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// hasLongRun reports whether any rune repeats at least n times consecutively.
func hasLongRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

// CategorizeTopics returns every topic whose keyword pattern matches the text,
// in a fixed order, or [general] when none match. Used only for topic
// personalization, never for gating.
func CategorizeTopics(text string) []Topic {
	var matched []Topic
	for _, topic := range topicOrder {
		if topicKeywords[topic].MatchString(text) {
			matched = append(matched, topic)
		}
	}
	if len(matched) == 0 {
		return []Topic{TopicGeneral}
	}
	return matched
}

// PrimaryTopic returns the first matching topic, or general.
func PrimaryTopic(text string) Topic {
	return CategorizeTopics(text)[0]
}

// AssessEngagement scores how engaged a reply is from word count, question
// marks, emotional words, and connective words. Score >=6 is high, >=3 medium.
func AssessEngagement(text string) Level {
	score := 0
	words := len(strings.Fields(text))
	switch {
	case words >= 12:
		score += 3
	case words >= 6:
		score += 2
	case words >= 3:
		score++
	}
	if strings.Contains(text, "?") {
		score += 2
	}
	if emotionalWords.MatchString(text) {
		score += 2
	}
	if connectiveWords.MatchString(text) {
		score += 2
	}
	switch {
	case score >= 6:
		return LevelHigh
	case score >= 3:
		return LevelMedium
	default:
		return LevelLow
	}
}

// AssessComplexity scores sentence development from word count, complex
// conjunctions, multi-clause structure, comparison words, and abstraction
// words. Score >=6 is complex, >=3 developing.
func AssessComplexity(text string) ComplexityLevel {
	score := 0
	words := len(strings.Fields(text))
	switch {
	case words >= 15:
		score += 3
	case words >= 8:
		score += 2
	case words >= 4:
		score++
	}
	if complexConjunctions.MatchString(text) {
		score += 2
	}
	if strings.Count(text, ",") >= 2 || (strings.Contains(text, ",") && strings.Contains(strings.ToLower(text), " and ")) {
		score++
	}
	if comparisonWords.MatchString(text) {
		score++
	}
	if abstractionWords.MatchString(text) {
		score += 2
	}
	switch {
	case score >= 6:
		return ComplexityComplex
	case score >= 3:
		return ComplexityDeveloping
	default:
		return ComplexitySimple
	}
}

// IsNewQuestion reports whether the text is a brand-new question rather than
// an answer to the pending follow-up. True only when the text contains a
// question mark AND begins with one of the fixed interrogative words. A
// statement like "do bees move fast" must stay false so a valid answer to a
// pending follow-up is never discarded.
func IsNewQuestion(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, "?") {
		return false
	}
	fields := strings.Fields(strings.ToLower(trimmed))
	if len(fields) == 0 {
		return false
	}
	first := strings.Trim(fields[0], ".,!?'\"")
	return interrogativeWords[first]
}
