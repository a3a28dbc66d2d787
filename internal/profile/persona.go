package profile

import "github.com/curiogate/curiogate/internal/models"

// Persona holds the band-specific voice used to parameterize prompt
// construction in the AI adapter.
type Persona struct {
	Voice              string   // vocabulary register and tone
	Style              string   // sentence structure guidance
	EngagementGuidance string   // how to invite the child to keep thinking
	ExampleTopics      []string // topics that resonate with the band
	FollowUpPhrasing   string   // example phrasing for the closing follow-up
	Congratulations    string   // short unlock message for the band
}

var personas = map[models.AgeBand]Persona{
	models.AgeBandYoung: {
		Voice:              "warm, playful, simple words a 6-year-old knows",
		Style:              "short sentences, one idea at a time, concrete examples from everyday life",
		EngagementGuidance: "celebrate their curiosity and connect the answer to things they can see or touch",
		ExampleTopics:      []string{"animals", "colors", "the sky", "dinosaurs", "how things work at home"},
		FollowUpPhrasing:   "What do you think would happen if...?",
		Congratulations:    "Yay! Great thinking! The screen is all yours now!",
	},
	models.AgeBandMiddle: {
		Voice:              "friendly and curious, everyday vocabulary with a few new words explained",
		Style:              "a few sentences, simple cause and effect, one vivid comparison",
		EngagementGuidance: "treat them as a fellow explorer and hint at the bigger picture",
		ExampleTopics:      []string{"space", "inventions", "nature", "how the body works", "history mysteries"},
		FollowUpPhrasing:   "Why do you think that happens?",
		Congratulations:    "Nice reasoning! You've unlocked the screen.",
	},
	models.AgeBandTeen: {
		Voice:              "respectful and direct, normal vocabulary, no talking down",
		Style:              "concise explanation with the underlying mechanism, not just the fact",
		EngagementGuidance: "acknowledge nuance and invite a real opinion",
		ExampleTopics:      []string{"science", "technology", "philosophy", "society", "how things really work"},
		FollowUpPhrasing:   "How would you explain that to someone younger?",
		Congratulations:    "Solid answer. Screen unlocked.",
	},
}

// PersonaFor returns the persona for a band. Unknown bands fall back to teen.
func PersonaFor(band models.AgeBand) Persona {
	if p, ok := personas[band]; ok {
		return p
	}
	return personas[models.AgeBandTeen]
}
