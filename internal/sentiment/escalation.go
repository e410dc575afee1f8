package sentiment

import "github.com/havenapp/wellspring/internal/models"

// dangerousTriggers are the labels that escalate on repeated appearance
// within the trigger window.
var dangerousTriggers = map[string]struct{}{
	"self-harm": {},
	"suicide":   {},
	"abuse":     {},
	"assault":   {},
	"violence":  {},
}

// ShouldEscalate is the threshold rule evaluated after every score update.
// It triggers on a high concerning ratio, a dominant negative ratio, a large
// absolute concerning mass, or repeated dangerous triggers.
func ShouldEscalate(state models.SentimentScore) bool {
	total := state.Total()

	var concerningRatio, negativeRatio float64
	if total > 0 {
		concerningRatio = state.Concerning / total
		negativeRatio = state.Negative / total
	}

	return concerningRatio > 0.3 ||
		negativeRatio > 0.6 ||
		state.Concerning > 5 ||
		hasDangerousTriggers(state.RecentTriggers)
}

func hasDangerousTriggers(triggers []models.TriggerEvent) bool {
	counts := make(map[string]int)
	for _, t := range triggers {
		if _, ok := dangerousTriggers[t.Trigger]; ok {
			counts[t.Trigger]++
			if counts[t.Trigger] >= 2 {
				return true
			}
		}
	}
	return false
}

// ProfileNeedsSupport is the profile-level rule consulted before offering the
// support chat. It deliberately stays separate from ShouldEscalate: the two
// rules encode different thresholds over the same state and are invoked
// independently.
func ProfileNeedsSupport(profile models.RiskProfile) bool {
	return profile.ConcernLevel >= 7 ||
		profile.DominantSentiment == models.SentimentConcerning
}
