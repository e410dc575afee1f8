package models

import "time"

// Sentiment is one of the four tracked sentiment buckets.
type Sentiment string

const (
	SentimentPositive   Sentiment = "positive"
	SentimentNegative   Sentiment = "negative"
	SentimentNeutral    Sentiment = "neutral"
	SentimentConcerning Sentiment = "concerning"
)

// Valid reports whether s is one of the four known buckets.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentConcerning:
		return true
	}
	return false
}

// ClassificationResult is the structured analysis of a single piece of content.
// ConcernLevel here is advisory only; the authoritative concern level is
// derived from the accumulated score state.
type ClassificationResult struct {
	Sentiment       Sentiment `json:"sentiment"`
	ConfidenceScore float64   `json:"confidenceScore"`
	EmotionalTone   []string  `json:"emotionalTone"`
	ConcernLevel    int       `json:"concernLevel"`
	SuggestedTags   []string  `json:"suggestedTags"`
	ContentTriggers []string  `json:"contentTriggers"`
}

// TriggerEvent is one detected safety trigger with its recency and weight.
type TriggerEvent struct {
	Trigger   string    `json:"trigger"`
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
}

// SentimentScore is the persisted per-user score state. The four buckets
// decay multiplicatively on every update and never go negative.
type SentimentScore struct {
	Positive          float64        `json:"positive"`
	Negative          float64        `json:"negative"`
	Neutral           float64        `json:"neutral"`
	Concerning        float64        `json:"concerning"`
	TotalInteractions int            `json:"totalInteractions"`
	LastUpdated       time.Time      `json:"lastUpdated"`
	RecentTriggers    []TriggerEvent `json:"recentTriggers"`
}

// Total returns the combined mass of all four buckets.
func (s SentimentScore) Total() float64 {
	return s.Positive + s.Negative + s.Neutral + s.Concerning
}

// Proportions is the four buckets normalized to sum 1.
type Proportions struct {
	Positive   float64 `json:"positive"`
	Negative   float64 `json:"negative"`
	Neutral    float64 `json:"neutral"`
	Concerning float64 `json:"concerning"`
}

// RiskProfile is a read-only summary derived from a SentimentScore.
// It is never persisted.
type RiskProfile struct {
	DominantSentiment Sentiment   `json:"dominantSentiment"`
	ConcernLevel      int         `json:"concernLevel"`
	Proportions       Proportions `json:"proportions"`
	CommonTriggers    []string    `json:"commonTriggers"`
	TotalInteractions int         `json:"totalInteractions"`
	LastUpdated       time.Time   `json:"lastUpdated"`
}

// InteractionType distinguishes how the user touched a piece of content.
type InteractionType string

const (
	InteractionPost    InteractionType = "post"
	InteractionLike    InteractionType = "like"
	InteractionComment InteractionType = "comment"
)

// Weight returns how strongly this interaction type reflects the user's own
// emotional state: authored content counts fully, lighter touches less.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionPost:
		return 1.0
	case InteractionComment:
		return 0.7
	case InteractionLike:
		return 0.3
	default:
		return 0.3
	}
}

// PostData is the content payload of an interaction.
type PostData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// InteractionEvent records one post/like/comment by a user.
type InteractionEvent struct {
	PostID          string          `json:"postId"`
	PostData        PostData        `json:"postData"`
	InteractionType InteractionType `json:"interactionType"`
	Timestamp       time.Time       `json:"timestamp"`
}

// ResourceType categorizes a support resource.
type ResourceType string

const (
	ResourceHotline      ResourceType = "hotline"
	ResourceApp          ResourceType = "app"
	ResourceWebsite      ResourceType = "website"
	ResourceOrganization ResourceType = "organization"
)

// Resource is one support resource shown to the user.
type Resource struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ContactInfo string       `json:"contactInfo"`
	Type        ResourceType `json:"type"`
}

// ResourceCacheEntry is the single persisted resource list slot.
type ResourceCacheEntry struct {
	Resources []Resource `json:"resources"`
	Timestamp time.Time  `json:"timestamp"`
}

// Sender identifies who wrote a conversation message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderSystem Sender = "system"
)

// ChatMessage is one turn in the support conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
