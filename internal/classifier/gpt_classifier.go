package classifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/llm"
	"github.com/havenapp/wellspring/internal/models"
)

type GPTClassifier struct {
	client      llm.Client
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewGPTClassifier(client llm.Client, maxTokens int, temperature float64, logger *zap.Logger) *GPTClassifier {
	return &GPTClassifier{
		client:      client,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Classify analyzes the post content and returns a structured result, or the
// neutral default if the service fails or answers with unusable text.
func (c *GPTClassifier) Classify(ctx context.Context, post models.PostData) models.ClassificationResult {
	prompt := fmt.Sprintf(`Analyze the following user-created content for emotional sentiment and safety-relevant themes.

Title: %s
Description: %s
Tags: %s

Return the analysis as a JSON object with this structure:
{
    "sentiment": "positive" | "negative" | "neutral" | "concerning",
    "confidenceScore": 0.0-1.0,
    "emotionalTone": ["tone1", "tone2", ...],
    "concernLevel": 0-10,
    "suggestedTags": ["tag1", "tag2", "tag3"],
    "contentTriggers": ["trigger1", ...]
}

Use "concerning" only when the content suggests distress, hopelessness, or risk to the author or others.
List 3-5 suggestedTags. List contentTriggers only for safety-relevant themes such as self-harm, suicide, abuse, assault or violence; otherwise leave it empty.`,
		post.Title, post.Description, strings.Join(post.Tags, ", "))

	response, err := c.client.Complete(ctx, prompt, &llm.GenerationParams{
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		c.logger.Warn("Classification call failed, using neutral default", zap.Error(err))
		return DefaultResult()
	}

	var result models.ClassificationResult
	if err := llm.ExtractObject(response, &result); err != nil {
		c.logger.Warn("Failed to parse classification response, using neutral default",
			zap.Error(err),
			zap.String("response", response))
		return DefaultResult()
	}

	return sanitize(result)
}

// sanitize clamps a parsed result into the documented ranges so downstream
// aggregation never sees out-of-range values.
func sanitize(result models.ClassificationResult) models.ClassificationResult {
	if !result.Sentiment.Valid() {
		result.Sentiment = models.SentimentNeutral
	}
	if result.ConfidenceScore < 0 {
		result.ConfidenceScore = 0
	}
	if result.ConfidenceScore > 1 {
		result.ConfidenceScore = 1
	}
	if result.ConcernLevel < 0 {
		result.ConcernLevel = 0
	}
	if result.ConcernLevel > 10 {
		result.ConcernLevel = 10
	}
	if len(result.EmotionalTone) == 0 {
		result.EmotionalTone = []string{"neutral"}
	}
	if result.SuggestedTags == nil {
		result.SuggestedTags = []string{}
	}
	if result.ContentTriggers == nil {
		result.ContentTriggers = []string{}
	}
	return result
}
