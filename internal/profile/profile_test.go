package profile

import (
	"reflect"
	"testing"

	"github.com/curiogate/curiogate/internal/models"
)

func intPtr(v int) *int { return &v }

func TestResolveBand(t *testing.T) {
	tests := []struct {
		name string
		age  *int
		want models.AgeBand
	}{
		{"age 7 is young", intPtr(7), models.AgeBandYoung},
		{"age 8 boundary is young", intPtr(8), models.AgeBandYoung},
		{"age 11 is middle", intPtr(11), models.AgeBandMiddle},
		{"age 12 boundary is middle", intPtr(12), models.AgeBandMiddle},
		{"age 16 is teen", intPtr(16), models.AgeBandTeen},
		{"nil age defaults to teen", nil, models.AgeBandTeen},
		{"age 3 clamps to young", intPtr(3), models.AgeBandYoung},
		{"age 99 clamps to teen", intPtr(99), models.AgeBandTeen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBand(tt.age); got != tt.want {
				t.Errorf("ResolveBand = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapInterest(t *testing.T) {
	topic, ok := MapInterest("dogs")
	if !ok || topic != "animals" {
		t.Errorf("MapInterest(dogs) = (%q, %v), want (animals, true)", topic, ok)
	}

	// Case and whitespace insensitive
	topic, ok = MapInterest("  Robots ")
	if !ok || topic != "technology" {
		t.Errorf("MapInterest(Robots) = (%q, %v), want (technology, true)", topic, ok)
	}

	if _, ok := MapInterest("quantum basket weaving"); ok {
		t.Error("Expected unmapped interest to report false")
	}
}

func TestMapInterests(t *testing.T) {
	got := MapInterests([]string{"dogs", "cats", "rockets", "unknown", "space"})
	want := []string{"animals", "space"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapInterests = %v, want %v", got, want)
	}

	if got := MapInterests(nil); got != nil {
		t.Errorf("Expected nil for empty interest list, got %v", got)
	}
}

func TestPersonaFor(t *testing.T) {
	young := PersonaFor(models.AgeBandYoung)
	if young.Voice == "" || young.Congratulations == "" {
		t.Error("Expected young persona to be fully populated")
	}

	// Unknown band falls back to teen
	fallback := PersonaFor(models.AgeBand("toddler"))
	teen := PersonaFor(models.AgeBandTeen)
	if fallback.Voice != teen.Voice {
		t.Errorf("Expected unknown band to fall back to teen, got voice %q", fallback.Voice)
	}
}

func TestQuestionsFor(t *testing.T) {
	qs := QuestionsFor("space", models.AgeBandYoung)
	if len(qs) == 0 {
		t.Fatal("Expected questions for space/young")
	}

	// Unknown topic falls back to the general bank
	general := QuestionsFor("general", models.AgeBandMiddle)
	unknown := QuestionsFor("underwater basket weaving", models.AgeBandMiddle)
	if !reflect.DeepEqual(unknown, general) {
		t.Errorf("Expected unknown topic to use general bank, got %v", unknown)
	}

	// Returned slice is a copy; mutating it must not affect the bank
	qs[0] = "mutated"
	again := QuestionsFor("space", models.AgeBandYoung)
	if again[0] == "mutated" {
		t.Error("QuestionsFor returned a reference into the bank")
	}
}

func TestSuggestedQuestions(t *testing.T) {
	// Interest banks come first, then general, truncated to limit
	got := SuggestedQuestions(models.AgeBandMiddle, []string{"rockets"}, 4)
	if len(got) != 4 {
		t.Fatalf("Expected 4 suggestions, got %d", len(got))
	}
	space := QuestionsFor("space", models.AgeBandMiddle)
	if got[0] != space[0] {
		t.Errorf("Expected first suggestion from the space bank, got %q", got[0])
	}
	general := QuestionsFor("general", models.AgeBandMiddle)
	if got[3] != general[0] {
		t.Errorf("Expected fourth suggestion from the general bank, got %q", got[3])
	}

	// No interests: general bank only
	got = SuggestedQuestions(models.AgeBandTeen, nil, 2)
	if len(got) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(got))
	}
	if got[0] != QuestionsFor("general", models.AgeBandTeen)[0] {
		t.Errorf("Expected general bank suggestion, got %q", got[0])
	}
}
