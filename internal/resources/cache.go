// Package resources serves the support resource list, regenerating it
// through the external service at most once per cache period.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/llm"
	"github.com/havenapp/wellspring/internal/models"
	"github.com/havenapp/wellspring/internal/storage"
)

// cacheTTL bounds how often the external service is asked for a fresh list.
// Fallback results are cached for the same period to bound retry cost.
const cacheTTL = 7 * 24 * time.Hour

type Cache struct {
	store   storage.Storage
	client  llm.Client
	logger  *zap.Logger
	nowFunc func() time.Time
}

func NewCache(store storage.Storage, client llm.Client, logger *zap.Logger) *Cache {
	return &Cache{
		store:   store,
		client:  client,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// GetResources returns the cached resource list, regenerating it when the
// single global slot is missing, unreadable, or older than the cache period.
func (c *Cache) GetResources(ctx context.Context, profile models.RiskProfile) []models.Resource {
	now := c.nowFunc()

	if entry, ok := c.loadEntry(ctx); ok && now.Sub(entry.Timestamp) < cacheTTL {
		return entry.Resources
	}

	resources := c.generate(ctx, profile)
	c.saveEntry(ctx, models.ResourceCacheEntry{
		Resources: resources,
		Timestamp: now,
	})
	return resources
}

func (c *Cache) loadEntry(ctx context.Context) (models.ResourceCacheEntry, bool) {
	raw, err := c.store.Get(ctx, storage.ResourceCacheKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("Failed to read resource cache", zap.Error(err))
		}
		return models.ResourceCacheEntry{}, false
	}

	var entry models.ResourceCacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// A corrupt entry is treated as a miss and forces regeneration.
		c.logger.Warn("Corrupt resource cache entry", zap.Error(err))
		return models.ResourceCacheEntry{}, false
	}
	if len(entry.Resources) == 0 {
		return models.ResourceCacheEntry{}, false
	}
	return entry, true
}

func (c *Cache) saveEntry(ctx context.Context, entry models.ResourceCacheEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.Error("Failed to encode resource cache entry", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, storage.ResourceCacheKey, string(raw)); err != nil {
		c.logger.Error("Failed to persist resource cache entry", zap.Error(err))
	}
}

func (c *Cache) generate(ctx context.Context, profile models.RiskProfile) []models.Resource {
	prompt := fmt.Sprintf(`Suggest exactly 5 mental health and wellbeing support resources for a user whose recent activity shows:
- dominant sentiment: %s
- concern level: %d out of 10
- recurring themes: %s

Return the suggestions as a JSON array with this structure:
[
    {
        "name": "resource name",
        "description": "one sentence on how it helps",
        "contactInfo": "phone number, URL or app store name",
        "type": "hotline" | "app" | "website" | "organization"
    }
]

Prefer free, widely available resources. Include at least one hotline when the concern level is 5 or higher.`,
		profile.DominantSentiment, profile.ConcernLevel, strings.Join(profile.CommonTriggers, ", "))

	response, err := c.client.Complete(ctx, prompt, &llm.GenerationParams{
		MaxTokens:   600,
		Temperature: 0.4,
	})
	if err != nil {
		c.logger.Warn("Resource generation failed, using fallback list", zap.Error(err))
		return FallbackResources()
	}

	var resources []models.Resource
	if err := llm.ExtractArray(response, &resources); err != nil {
		c.logger.Warn("Failed to parse resource list, using fallback list",
			zap.Error(err),
			zap.String("response", response))
		return FallbackResources()
	}
	if len(resources) == 0 {
		return FallbackResources()
	}
	return resources
}
