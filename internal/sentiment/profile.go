package sentiment

import (
	"math"
	"sort"

	"github.com/havenapp/wellspring/internal/models"
)

// Project derives a read-only risk profile from the score state.
func Project(state models.SentimentScore) models.RiskProfile {
	total := state.Total()
	if total == 0 {
		return models.RiskProfile{
			DominantSentiment: models.SentimentNeutral,
			ConcernLevel:      0,
			CommonTriggers:    []string{},
			TotalInteractions: state.TotalInteractions,
			LastUpdated:       state.LastUpdated,
		}
	}

	proportions := models.Proportions{
		Positive:   state.Positive / total,
		Negative:   state.Negative / total,
		Neutral:    state.Neutral / total,
		Concerning: state.Concerning / total,
	}

	return models.RiskProfile{
		DominantSentiment: dominantSentiment(proportions),
		ConcernLevel:      concernLevel(proportions),
		Proportions:       proportions,
		CommonTriggers:    commonTriggers(state.RecentTriggers),
		TotalInteractions: state.TotalInteractions,
		LastUpdated:       state.LastUpdated,
	}
}

// dominantSentiment scans the buckets in fixed order and keeps the first
// strict maximum, so ties favor the earlier bucket.
func dominantSentiment(p models.Proportions) models.Sentiment {
	dominant := models.SentimentPositive
	best := p.Positive

	candidates := []struct {
		sentiment models.Sentiment
		value     float64
	}{
		{models.SentimentNegative, p.Negative},
		{models.SentimentNeutral, p.Neutral},
		{models.SentimentConcerning, p.Concerning},
	}
	for _, c := range candidates {
		if c.value > best {
			dominant = c.sentiment
			best = c.value
		}
	}
	return dominant
}

// concernLevel maps concerning and negative proportions onto a 0-10 scale.
func concernLevel(p models.Proportions) int {
	level := (p.Concerning*7 + p.Negative*3) * 10
	return int(math.Round(math.Min(10, level)))
}

// commonTriggers returns the top three trigger labels by summed weight, ties
// broken by the order the label was first seen.
func commonTriggers(triggers []models.TriggerEvent) []string {
	type entry struct {
		label    string
		weight   float64
		firstIdx int
	}

	byLabel := make(map[string]*entry)
	order := make([]*entry, 0, len(triggers))
	for i, t := range triggers {
		if e, ok := byLabel[t.Trigger]; ok {
			e.weight += t.Weight
			continue
		}
		e := &entry{label: t.Trigger, weight: t.Weight, firstIdx: i}
		byLabel[t.Trigger] = e
		order = append(order, e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].weight != order[j].weight {
			return order[i].weight > order[j].weight
		}
		return order[i].firstIdx < order[j].firstIdx
	})

	top := make([]string, 0, 3)
	for _, e := range order {
		if len(top) == 3 {
			break
		}
		top = append(top, e.label)
	}
	return top
}
