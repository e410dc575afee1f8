package sentiment

import (
	"testing"
	"time"

	"github.com/havenapp/wellspring/internal/models"
)

func TestProjectEmptyState(t *testing.T) {
	profile := Project(models.SentimentScore{})

	if profile.DominantSentiment != models.SentimentNeutral {
		t.Fatalf("expected neutral dominant, got %s", profile.DominantSentiment)
	}
	if profile.ConcernLevel != 0 {
		t.Fatalf("expected concern 0, got %d", profile.ConcernLevel)
	}
	if len(profile.CommonTriggers) != 0 {
		t.Fatalf("expected no triggers, got %v", profile.CommonTriggers)
	}
}

func TestProjectDominantTieFavorsPositive(t *testing.T) {
	state := models.SentimentScore{Positive: 1, Negative: 1, Neutral: 1, Concerning: 1}

	profile := Project(state)
	if profile.DominantSentiment != models.SentimentPositive {
		t.Fatalf("four-way tie must favor positive, got %s", profile.DominantSentiment)
	}
	if profile.Proportions.Positive != 0.25 {
		t.Fatalf("expected proportion 0.25, got %f", profile.Proportions.Positive)
	}
}

func TestProjectDominantStrictMax(t *testing.T) {
	state := models.SentimentScore{Positive: 1, Negative: 1, Neutral: 1, Concerning: 2}

	profile := Project(state)
	if profile.DominantSentiment != models.SentimentConcerning {
		t.Fatalf("expected concerning dominant, got %s", profile.DominantSentiment)
	}
}

func TestProjectConcernLevelClamped(t *testing.T) {
	// All mass concerning: (1.0*7 + 0*3) * 10 = 70, clamped to 10.
	profile := Project(models.SentimentScore{Concerning: 3})
	if profile.ConcernLevel != 10 {
		t.Fatalf("expected concern 10, got %d", profile.ConcernLevel)
	}
}

func TestProjectConcernLevelFormula(t *testing.T) {
	// Proportions: concerning 0.05, negative 0.10.
	// (0.05*7 + 0.10*3) * 10 = 6.5, rounds to 7.
	state := models.SentimentScore{
		Positive:   0.85,
		Concerning: 0.05,
		Negative:   0.10,
	}
	profile := Project(state)
	if profile.ConcernLevel != 7 {
		t.Fatalf("expected concern 7, got %d", profile.ConcernLevel)
	}
}

func TestProjectCommonTriggersTopThreeByWeight(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := models.SentimentScore{
		Positive: 1,
		RecentTriggers: []models.TriggerEvent{
			{Trigger: "loneliness", Timestamp: now, Weight: 0.5},
			{Trigger: "self-harm", Timestamp: now, Weight: 0.9},
			{Trigger: "stress", Timestamp: now, Weight: 0.2},
			{Trigger: "loneliness", Timestamp: now, Weight: 0.5},
			{Trigger: "grief", Timestamp: now, Weight: 0.3},
		},
	}

	profile := Project(state)
	want := []string{"loneliness", "self-harm", "grief"}
	if len(profile.CommonTriggers) != len(want) {
		t.Fatalf("expected %v, got %v", want, profile.CommonTriggers)
	}
	for i := range want {
		if profile.CommonTriggers[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, profile.CommonTriggers)
		}
	}
}

func TestProjectCommonTriggersTieKeepsEncounterOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := models.SentimentScore{
		Neutral: 1,
		RecentTriggers: []models.TriggerEvent{
			{Trigger: "b", Timestamp: now, Weight: 0.4},
			{Trigger: "a", Timestamp: now, Weight: 0.4},
		},
	}

	profile := Project(state)
	if profile.CommonTriggers[0] != "b" || profile.CommonTriggers[1] != "a" {
		t.Fatalf("tie should keep encounter order, got %v", profile.CommonTriggers)
	}
}
