package classifier

import (
	"context"

	"github.com/havenapp/wellspring/internal/models"
)

// Classifier analyzes a piece of content for sentiment and safety triggers.
// Implementations must always return a usable result: on any failure the
// neutral default is substituted so callers never branch on errors.
type Classifier interface {
	Classify(ctx context.Context, post models.PostData) models.ClassificationResult
}

// DefaultResult is the safe classification used when the external service is
// unavailable or returns something unparseable.
func DefaultResult() models.ClassificationResult {
	return models.ClassificationResult{
		Sentiment:       models.SentimentNeutral,
		ConfidenceScore: 0.5,
		EmotionalTone:   []string{"neutral"},
		ConcernLevel:    0,
		SuggestedTags:   []string{},
		ContentTriggers: []string{},
	}
}
