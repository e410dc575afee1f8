// Package notify forwards escalation events to an operations channel so the
// support team has a diagnostic trail outside the app itself.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/models"
)

// TelegramNotifier posts escalation summaries to a fixed chat. Delivery is
// best effort; a failed send is logged and dropped.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}, nil
}

// EscalationDetected posts a short summary of the user's risk profile. The
// user id is an opaque app identifier, not personal data.
func (n *TelegramNotifier) EscalationDetected(userID string, profile models.RiskProfile) {
	text := fmt.Sprintf("Escalation for user %s\nDominant: %s\nConcern level: %d/10\nThemes: %s",
		userID,
		profile.DominantSentiment,
		profile.ConcernLevel,
		strings.Join(profile.CommonTriggers, ", "))

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("Failed to send escalation notification", zap.Error(err))
	}
}
