package classify

import (
	"reflect"
	"testing"
)

func TestIsNonsensical(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"keyboard mash", "asdf", true},
		{"keyboard mash with padding", "hey asdfgh", true},
		{"too short", "hi", true},
		{"filler greeting", "hello", true},
		{"filler with punctuation", "ok.", true},
		{"filler idk", "idk", true},
		{"no letters", "12345!!!", true},
		{"repeated character", "aaaaaa", true},
		{"repeated character inside words", "heyyyy friend", true},
		{"three-repeat is allowed", "hmmm okay sure", false},
		{"consonant run", "xkcdqrtpl", true},
		{"real question", "Why is the sky blue?", false},
		{"real question about animals", "Why do dogs bark?", false},
		{"short but real", "why", false},
		{"statement answer", "No!!", false},
		{"surrounding whitespace", "   Why do birds sing?   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNonsensical(tt.text); got != tt.want {
				t.Errorf("IsNonsensical(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasLongRun(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want bool
	}{
		{"exact threshold", "aaaa", 4, true},
		{"below threshold", "aaab", 4, false},
		{"run in the middle", "soooo cool", 4, true},
		{"empty string", "", 4, false},
		{"multibyte runes", "😀😀😀😀", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasLongRun(tt.text, tt.n); got != tt.want {
				t.Errorf("hasLongRun(%q, %d) = %v, want %v", tt.text, tt.n, got, tt.want)
			}
		})
	}
}

func TestCategorizeTopics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Topic
	}{
		{"single topic", "How do rockets work?", []Topic{TopicSpace}},
		{"nature", "Why do bees make honey?", []Topic{TopicNature}},
		{"technology", "How does a computer think?", []Topic{TopicTechnology, TopicPhilosophy}},
		{"two topics in fixed order", "Do plants need sunlight in space?", []Topic{TopicNature, TopicSpace}},
		{"no match falls back to general", "Why is the sky blue?", []Topic{TopicGeneral}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeTopics(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CategorizeTopics(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestPrimaryTopic(t *testing.T) {
	if got := PrimaryTopic("Do plants need sunlight in space?"); got != TopicNature {
		t.Errorf("Expected first matching topic nature, got %v", got)
	}
	if got := PrimaryTopic("blah blah blah"); got != TopicGeneral {
		t.Errorf("Expected general for unmatched text, got %v", got)
	}
}

func TestAssessEngagement(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Level
	}{
		{"single word", "idk", LevelLow},
		{"two words", "the sun", LevelLow},
		{"connective pushes medium", "maybe because it is hot", LevelMedium},
		{"emotion and connective push high", "I love dogs because they are fluffy and fun", LevelHigh},
		{"question mark counts", "does it work when it rains?", LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessEngagement(tt.text); got != tt.want {
				t.Errorf("AssessEngagement(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAssessComplexity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ComplexityLevel
	}{
		{"bare yes", "yes", ComplexitySimple},
		{"short phrase", "it melts", ComplexitySimple},
		{"conjunction reaches developing", "maybe because it gets hot", ComplexityDeveloping},
		{"long reasoned reply is complex", "I think it happens because the light bends, and the colors separate, like a rainbow", ComplexityComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessComplexity(tt.text); got != tt.want {
				t.Errorf("AssessComplexity(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsNewQuestion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"interrogative with question mark", "What causes rain?", true},
		{"how question", "How do planes fly?", true},
		{"leading whitespace", "  why is water wet?", true},
		{"no question mark", "What causes rain", false},
		{"auxiliary opener stays an answer", "do you mean really fast?", false},
		{"is opener stays an answer", "is that true?", false},
		{"statement with question mark", "because it is hot?", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNewQuestion(tt.text); got != tt.want {
				t.Errorf("IsNewQuestion(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
