package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/classifier"
	"github.com/havenapp/wellspring/internal/models"
	"github.com/havenapp/wellspring/internal/storage"
)

const maxInteractionHistory = 50

// Notifier receives escalation events for the operations channel. It is
// optional; a nil notifier disables it.
type Notifier interface {
	EscalationDetected(userID string, profile models.RiskProfile)
}

// Service owns the persisted score state and interaction history of each
// user. All score mutations for a user are serialized through a per-user
// mutex so concurrent interactions cannot lose updates.
type Service struct {
	store      storage.Storage
	classifier classifier.Classifier
	notifier   Notifier
	logger     *zap.Logger
	nowFunc    func() time.Time

	locks sync.Map // userID -> *sync.Mutex
}

func NewService(store storage.Storage, clf classifier.Classifier, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		classifier: clf,
		notifier:   notifier,
		logger:     logger,
		nowFunc:    time.Now,
	}
}

// ProcessContent classifies a user's own authored content, folds it into the
// score state with full weight, and records it in the interaction history.
// The second return value is the post-update escalation decision.
func (s *Service) ProcessContent(ctx context.Context, userID, postID string, post models.PostData) (models.ClassificationResult, bool) {
	result := s.classifier.Classify(ctx, post)

	escalate := s.applyUpdate(ctx, userID, result, models.InteractionPost.Weight())
	s.appendInteraction(ctx, userID, models.InteractionEvent{
		PostID:          postID,
		PostData:        post,
		InteractionType: models.InteractionPost,
		Timestamp:       s.nowFunc(),
	})

	return result, escalate
}

// RecordInteraction classifies the content behind a like/comment/post event
// and folds it in with the interaction-type weight. Returns the post-update
// escalation decision.
func (s *Service) RecordInteraction(ctx context.Context, userID string, event models.InteractionEvent) bool {
	result := s.classifier.Classify(ctx, event.PostData)

	escalate := s.applyUpdate(ctx, userID, result, event.InteractionType.Weight())
	if event.Timestamp.IsZero() {
		event.Timestamp = s.nowFunc()
	}
	s.appendInteraction(ctx, userID, event)

	return escalate
}

// applyUpdate runs the serialized read-modify-write over the persisted score
// slot and evaluates the update-time escalation rule.
func (s *Service) applyUpdate(ctx context.Context, userID string, result models.ClassificationResult, weight float64) bool {
	lock := s.userLock(userID)
	lock.Lock()
	state := s.loadScore(ctx, userID)
	state = UpdateScore(state, result, weight, s.nowFunc())
	s.saveScore(ctx, userID, state)
	lock.Unlock()

	escalate := ShouldEscalate(state)
	if escalate && s.notifier != nil {
		// Notify outside the lock: delivery may hit the network.
		s.notifier.EscalationDetected(userID, Project(state))
	}
	return escalate
}

// Profile projects the current risk profile for a user. A missing or
// unreadable score state yields the neutral zero profile.
func (s *Service) Profile(ctx context.Context, userID string) models.RiskProfile {
	return Project(s.loadScore(ctx, userID))
}

// ResetScore removes the persisted score state; only the user may request
// this.
func (s *Service) ResetScore(ctx context.Context, userID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.store.Delete(ctx, storage.ScoreKey(userID))
}

// RecentInteractions returns up to limit most recent interaction events,
// newest last.
func (s *Service) RecentInteractions(ctx context.Context, userID string, limit int) []models.InteractionEvent {
	history := s.loadInteractions(ctx, userID)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

func (s *Service) userLock(userID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *Service) loadScore(ctx context.Context, userID string) models.SentimentScore {
	raw, err := s.store.Get(ctx, storage.ScoreKey(userID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to load score state, starting fresh",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return models.SentimentScore{}
	}

	var state models.SentimentScore
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Warn("Corrupt score state, starting fresh",
			zap.String("user_id", userID),
			zap.Error(err))
		return models.SentimentScore{}
	}
	return state
}

func (s *Service) saveScore(ctx context.Context, userID string, state models.SentimentScore) {
	raw, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("Failed to encode score state", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, storage.ScoreKey(userID), string(raw)); err != nil {
		s.logger.Error("Failed to persist score state",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func (s *Service) loadInteractions(ctx context.Context, userID string) []models.InteractionEvent {
	raw, err := s.store.Get(ctx, storage.InteractionsKey(userID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to load interaction history",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return nil
	}

	var history []models.InteractionEvent
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.logger.Warn("Corrupt interaction history, starting fresh",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil
	}
	return history
}

func (s *Service) appendInteraction(ctx context.Context, userID string, event models.InteractionEvent) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	history := append(s.loadInteractions(ctx, userID), event)
	if len(history) > maxInteractionHistory {
		history = history[len(history)-maxInteractionHistory:]
	}

	raw, err := json.Marshal(history)
	if err != nil {
		s.logger.Error("Failed to encode interaction history", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, storage.InteractionsKey(userID), string(raw)); err != nil {
		s.logger.Error("Failed to persist interaction history",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
