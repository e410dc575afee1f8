// Package chat holds the support conversation log and the reply generator
// behind the in-app support agent.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/models"
	"github.com/havenapp/wellspring/internal/storage"
)

const maxMessages = 50

// Store is the bounded FIFO conversation log, one list per user.
type Store struct {
	store   storage.Storage
	logger  *zap.Logger
	nowFunc func() time.Time
}

func NewStore(store storage.Storage, logger *zap.Logger) *Store {
	return &Store{
		store:   store,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Append pushes a message onto the log, evicting the oldest entries past the
// cap, and returns the stored message.
func (s *Store) Append(ctx context.Context, userID string, sender models.Sender, message string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Message:   message,
		Timestamp: s.nowFunc(),
	}

	history := append(s.History(ctx, userID), msg)
	if len(history) > maxMessages {
		history = history[len(history)-maxMessages:]
	}

	raw, err := json.Marshal(history)
	if err != nil {
		s.logger.Error("Failed to encode conversation", zap.Error(err))
		return msg
	}
	if err := s.store.Set(ctx, storage.ConversationKey(userID), string(raw)); err != nil {
		s.logger.Error("Failed to persist conversation",
			zap.String("user_id", userID),
			zap.Error(err))
	}
	return msg
}

// History returns the full stored log, oldest first. Storage failures yield
// an empty history.
func (s *Store) History(ctx context.Context, userID string) []models.ChatMessage {
	raw, err := s.store.Get(ctx, storage.ConversationKey(userID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to load conversation",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return nil
	}

	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.logger.Warn("Corrupt conversation log, starting fresh",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil
	}
	return history
}

// Clear deletes the conversation log.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, storage.ConversationKey(userID))
}
