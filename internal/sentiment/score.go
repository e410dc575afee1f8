// Package sentiment maintains the decaying per-user sentiment score state,
// derives risk profiles from it, and evaluates the escalation rules.
package sentiment

import (
	"sort"
	"time"

	"github.com/havenapp/wellspring/internal/models"
)

const (
	// DecayFactor shrinks accumulated sentiment mass before each new
	// observation so recent interactions dominate older ones.
	DecayFactor = 0.95

	triggerWindow = 14 * 24 * time.Hour
	maxTriggers   = 20
)

// UpdateScore folds one classified interaction into the score state and
// returns the new state. The input state is not mutated.
func UpdateScore(state models.SentimentScore, result models.ClassificationResult, weight float64, now time.Time) models.SentimentScore {
	next := state

	next.Positive *= DecayFactor
	next.Negative *= DecayFactor
	next.Neutral *= DecayFactor
	next.Concerning *= DecayFactor

	observation := weight * result.ConfidenceScore
	switch result.Sentiment {
	case models.SentimentPositive:
		next.Positive += observation
	case models.SentimentNegative:
		next.Negative += observation
	case models.SentimentConcerning:
		next.Concerning += observation
	default:
		next.Neutral += observation
	}

	next.TotalInteractions = state.TotalInteractions + 1
	next.LastUpdated = now

	triggers := make([]models.TriggerEvent, 0, len(state.RecentTriggers)+len(result.ContentTriggers))
	triggers = append(triggers, state.RecentTriggers...)
	for _, label := range result.ContentTriggers {
		triggers = append(triggers, models.TriggerEvent{
			Trigger:   label,
			Timestamp: now,
			Weight:    observation,
		})
	}
	next.RecentTriggers = pruneTriggers(triggers, now)

	return next
}

// pruneTriggers drops entries older than the window and caps the list at the
// most recent entries, preserving oldest-to-newest order.
func pruneTriggers(triggers []models.TriggerEvent, now time.Time) []models.TriggerEvent {
	cutoff := now.Add(-triggerWindow)

	kept := make([]models.TriggerEvent, 0, len(triggers))
	for _, t := range triggers {
		if t.Timestamp.After(cutoff) {
			kept = append(kept, t)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})

	if len(kept) > maxTriggers {
		kept = kept[len(kept)-maxTriggers:]
	}
	return kept
}
