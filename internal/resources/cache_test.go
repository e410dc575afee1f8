package resources

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/llm"
	"github.com/havenapp/wellspring/internal/models"
	"github.com/havenapp/wellspring/internal/storage"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (c *fakeClient) Complete(ctx context.Context, prompt string, params *llm.GenerationParams) (string, error) {
	c.calls++
	return c.response, c.err
}

const generatedList = `Here you go:
[
  {"name":"Samaritans","description":"Listening support any time.","contactInfo":"116 123","type":"hotline"},
  {"name":"Headspace","description":"Guided meditation.","contactInfo":"App Store","type":"app"}
]`

func newTestCache(client *fakeClient) (*Cache, *storage.MemoryStorage, *time.Time) {
	store := storage.NewMemoryStorage()
	cache := NewCache(store, client, zap.NewNop())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.nowFunc = func() time.Time { return now }
	return cache, store, &now
}

func TestGetResourcesPopulatesAndCaches(t *testing.T) {
	client := &fakeClient{response: generatedList}
	cache, _, _ := newTestCache(client)
	ctx := context.Background()

	first := cache.GetResources(ctx, models.RiskProfile{DominantSentiment: models.SentimentNeutral})
	if len(first) != 2 || first[0].Name != "Samaritans" {
		t.Fatalf("unexpected resources: %#v", first)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 generation call, got %d", client.calls)
	}

	second := cache.GetResources(ctx, models.RiskProfile{DominantSentiment: models.SentimentNegative})
	if client.calls != 1 {
		t.Fatalf("cached call must not hit the network, got %d calls", client.calls)
	}
	if len(second) != len(first) || second[0].Name != first[0].Name {
		t.Fatalf("cached list differs: %#v vs %#v", second, first)
	}
}

func TestGetResourcesRefreshesAfterTTL(t *testing.T) {
	client := &fakeClient{response: generatedList}
	cache, _, now := newTestCache(client)
	ctx := context.Background()

	cache.GetResources(ctx, models.RiskProfile{})
	*now = now.Add(8 * 24 * time.Hour)
	cache.GetResources(ctx, models.RiskProfile{})

	if client.calls != 2 {
		t.Fatalf("expected exactly one refresh after TTL, got %d calls", client.calls)
	}
}

func TestGetResourcesFallbackOnFailureIsCached(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("service unavailable")}
	cache, _, _ := newTestCache(client)
	ctx := context.Background()

	first := cache.GetResources(ctx, models.RiskProfile{})
	if len(first) != len(FallbackResources()) {
		t.Fatalf("expected fallback list, got %#v", first)
	}

	cache.GetResources(ctx, models.RiskProfile{})
	if client.calls != 1 {
		t.Fatalf("fallback must be cached too, got %d calls", client.calls)
	}
}

func TestGetResourcesParseFailureUsesFallback(t *testing.T) {
	client := &fakeClient{response: "Sorry, I cannot help with that."}
	cache, _, _ := newTestCache(client)

	got := cache.GetResources(context.Background(), models.RiskProfile{})
	if len(got) != len(FallbackResources()) || got[0].Name != FallbackResources()[0].Name {
		t.Fatalf("expected fallback list, got %#v", got)
	}
}

func TestGetResourcesCorruptEntryForcesRegeneration(t *testing.T) {
	client := &fakeClient{response: generatedList}
	cache, store, _ := newTestCache(client)
	ctx := context.Background()

	if err := store.Set(ctx, storage.ResourceCacheKey, "{not json"); err != nil {
		t.Fatal(err)
	}
	got := cache.GetResources(ctx, models.RiskProfile{})
	if client.calls != 1 {
		t.Fatalf("corrupt entry must behave as a miss, got %d calls", client.calls)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected resources: %#v", got)
	}
}
