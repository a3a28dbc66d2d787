// Package classify provides pure text-analysis heuristics over short child
// utterances: nonsense detection, topic categorization, engagement and
// complexity scoring, and new-question detection.
//
// All classification data lives in this file as plain tables so the heuristics
// can be tested and extended without touching control flow. Nothing in this
// package performs I/O or holds mutable state.
package classify

import "regexp"

// Topic is one of the fixed topic categories used for personalization.
// Topics never gate access; they only flavor prompts and example questions.
type Topic string

const (
	TopicScience    Topic = "science"
	TopicNature     Topic = "nature"
	TopicTechnology Topic = "technology"
	TopicSpace      Topic = "space"
	TopicHistory    Topic = "history"
	TopicArt        Topic = "art"
	TopicSocial     Topic = "social"
	TopicPhilosophy Topic = "philosophy"
	TopicGeneral    Topic = "general"
)

// junkPatterns match input that is almost certainly not a real question.
// Kept conservative: borderline input must pass through as genuine curiosity.
// Repeated-character runs are checked separately by hasLongRun since RE2 has
// no backreferences.
var junkPatterns = []*regexp.Regexp{
	// no letters at all (digits, punctuation, emoji)
	regexp.MustCompile(`^[^a-zA-Z]*$`),
	// five or more consecutive consonants, keyboard-mash territory
	regexp.MustCompile(`(?i)[bcdfghjklmnpqrstvwxz]{5,}`),
	// common keyboard-row runs
	regexp.MustCompile(`(?i)(qwert|asdf|sdfg|dfgh|zxcv|xcvb|hjkl|jkl;)`),
}

// fillerTokens are short utterances that are greetings or probes, not questions.
var fillerTokens = map[string]bool{
	"hi":      true,
	"hello":   true,
	"hey":     true,
	"yo":      true,
	"sup":     true,
	"test":    true,
	"testing": true,
	"ok":      true,
	"okay":    true,
	"lol":     true,
	"idk":     true,
}

// interrogativeWords is the fixed set of words a brand-new question must start
// with. Deliberately narrow: auxiliary-verb openers like "is" or "do" are
// excluded so that a reply phrased as a clarifying question ("do you mean
// really fast?") is still treated as an answer to the pending follow-up.
var interrogativeWords = map[string]bool{
	"what":  true,
	"why":   true,
	"how":   true,
	"when":  true,
	"where": true,
	"who":   true,
	"which": true,
	"whose": true,
	"whom":  true,
}

// topicKeywords maps each topic to its fixed keyword pattern.
var topicKeywords = map[Topic]*regexp.Regexp{
	TopicScience:    regexp.MustCompile(`(?i)\b(science|chemical|chemistry|experiment|atom|molecule|energy|gravity|magnet|electricity|cell|germ|dinosaur|fossil|volcano)\w*`),
	TopicNature:     regexp.MustCompile(`(?i)\b(animal|plant|tree|flower|bee|bird|fish|dog|cat|insect|bug|forest|ocean|river|rain|weather|cloud|season|nature)\w*`),
	TopicTechnology: regexp.MustCompile(`(?i)\b(computer|robot|internet|phone|tablet|machine|code|coding|program|video ?game|electric|battery|engine|technology)\w*`),
	TopicSpace:      regexp.MustCompile(`(?i)\b(space|planet|star|moon|sun|rocket|astronaut|galaxy|universe|comet|asteroid|mars|jupiter|alien)\w*`),
	TopicHistory:    regexp.MustCompile(`(?i)\b(history|ancient|castle|knight|pyramid|egypt|rome|roman|war|king|queen|pharaoh|viking|dinosaurs? lived|long ago|olden)\w*`),
	TopicArt:        regexp.MustCompile(`(?i)\b(art|draw|paint|music|song|sing|dance|color|colour|picture|story|poem|instrument|craft)\w*`),
	TopicSocial:     regexp.MustCompile(`(?i)\b(friend|family|people|feel|feeling|emotion|share|fair|kind|help|school|teacher|brother|sister|mom|dad)\w*`),
	TopicPhilosophy: regexp.MustCompile(`(?i)\b(why do we|meaning|real|dream|think|thought|mind|true|truth|believe|exist|infinity|forever|nothing)\w*`),
}

// topicOrder fixes a deterministic iteration order for categorization.
var topicOrder = []Topic{
	TopicScience,
	TopicNature,
	TopicTechnology,
	TopicSpace,
	TopicHistory,
	TopicArt,
	TopicSocial,
	TopicPhilosophy,
}

// emotionalWords signal personal engagement in a reply.
var emotionalWords = regexp.MustCompile(`(?i)\b(love|like|hate|scared|scary|afraid|happy|sad|excited|exciting|cool|awesome|amazing|fun|funny|weird|wow|favorite|favourite)\b`)

// connectiveWords signal a reply that links ideas together.
var connectiveWords = regexp.MustCompile(`(?i)\b(because|so|but|and then|also|since|if|when|after|before)\b`)

// complexConjunctions signal multi-clause reasoning.
var complexConjunctions = regexp.MustCompile(`(?i)\b(because|although|though|however|therefore|unless|whereas|while|since)\b`)

// comparisonWords signal comparative reasoning.
var comparisonWords = regexp.MustCompile(`(?i)\b(than|more|less|bigger|smaller|faster|slower|same|different|similar|like a|like the)\b`)

// abstractionWords signal abstract or hypothetical thinking.
var abstractionWords = regexp.MustCompile(`(?i)\b(think|believe|imagine|idea|maybe|might|probably|possible|wonder|guess|pretend|suppose)\b`)
