package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the key-value persistence collaborator. Values are opaque
// strings; callers own the encoding.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builders for the per-user and global slots.

func ScoreKey(userID string) string {
	return fmt.Sprintf("sentiment_scores_%s", userID)
}

func InteractionsKey(userID string) string {
	return fmt.Sprintf("user_interactions_%s", userID)
}

func ConversationKey(userID string) string {
	return fmt.Sprintf("support_chat_%s", userID)
}

// ResourceCacheKey is the single global resource cache slot.
const ResourceCacheKey = "cached_peer_resources"
