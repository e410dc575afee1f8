package chat

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/models"
	"github.com/havenapp/wellspring/internal/storage"
)

func TestAppendAndHistory(t *testing.T) {
	store := NewStore(storage.NewMemoryStorage(), zap.NewNop())
	ctx := context.Background()

	msg := store.Append(ctx, "user-1", models.SenderUser, "hello")
	if msg.ID == "" {
		t.Fatal("message must get an id")
	}
	if msg.Sender != models.SenderUser {
		t.Fatalf("unexpected sender: %s", msg.Sender)
	}

	history := store.History(ctx, "user-1")
	if len(history) != 1 || history[0].Message != "hello" {
		t.Fatalf("unexpected history: %#v", history)
	}
}

func TestAppendEvictsOldestPastCap(t *testing.T) {
	store := NewStore(storage.NewMemoryStorage(), zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 51; i++ {
		store.Append(ctx, "user-1", models.SenderUser, fmt.Sprintf("message %d", i))
	}

	history := store.History(ctx, "user-1")
	if len(history) != 50 {
		t.Fatalf("expected exactly 50 messages, got %d", len(history))
	}
	if history[0].Message != "message 2" {
		t.Fatalf("oldest message should be evicted, got %q first", history[0].Message)
	}
	if history[len(history)-1].Message != "message 51" {
		t.Fatalf("newest message missing, got %q last", history[len(history)-1].Message)
	}
}

func TestClear(t *testing.T) {
	store := NewStore(storage.NewMemoryStorage(), zap.NewNop())
	ctx := context.Background()

	store.Append(ctx, "user-1", models.SenderSystem, "hi")
	if err := store.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if history := store.History(ctx, "user-1"); len(history) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(history))
	}
}

func TestHistoriesAreIsolatedPerUser(t *testing.T) {
	store := NewStore(storage.NewMemoryStorage(), zap.NewNop())
	ctx := context.Background()

	store.Append(ctx, "user-1", models.SenderUser, "one")
	store.Append(ctx, "user-2", models.SenderUser, "two")

	if history := store.History(ctx, "user-1"); len(history) != 1 || history[0].Message != "one" {
		t.Fatalf("unexpected history for user-1: %#v", history)
	}
}
