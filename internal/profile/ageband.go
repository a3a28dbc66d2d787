// Package profile resolves child ages into developmental bands and exposes
// the band-specific personas, interest mappings, and question template banks
// used to personalize prompts and example questions. Everything here is pure
// lookup; nothing in this package gates access.
package profile

import "github.com/curiogate/curiogate/internal/models"

// Age band boundaries. Out-of-range ages clamp to the nearest band.
const (
	youngMaxAge  = 8
	middleMaxAge = 12
)

// ResolveBand maps an age to its developmental band. Total and deterministic
// for every input: nil age defaults to teen, low ages clamp to young, high
// ages clamp to teen.
func ResolveBand(age *int) models.AgeBand {
	if age == nil {
		return models.AgeBandTeen
	}
	switch {
	case *age <= youngMaxAge:
		return models.AgeBandYoung
	case *age <= middleMaxAge:
		return models.AgeBandMiddle
	default:
		return models.AgeBandTeen
	}
}
