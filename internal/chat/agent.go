package chat

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/llm"
	"github.com/havenapp/wellspring/internal/models"
)

const (
	historyWindow      = 6
	interactionContext = 3
	greetingContext    = 5
)

// fallbackReply is returned and stored when the generation service fails
// mid-conversation.
const fallbackReply = "I'm having trouble connecting right now. Please try again in a moment - and if you need to talk to someone, reaching out to a person you trust is always a good step."

var cannedGreetings = []string{
	"Hi, I'm here whenever you want to talk. How are you feeling today?",
	"Hey, thanks for stopping by. Is there anything on your mind you'd like to share?",
	"Hello! This is a space just for you. How has your day been so far?",
}

// ProfileSource supplies the risk profile and recent interactions used for
// context assembly.
type ProfileSource interface {
	Profile(ctx context.Context, userID string) models.RiskProfile
	RecentInteractions(ctx context.Context, userID string, limit int) []models.InteractionEvent
}

// Agent generates supportive greetings and replies, persisting every turn in
// the conversation store. Each call stores exactly one system message,
// whether generation succeeded or not.
type Agent struct {
	store    *Store
	profiles ProfileSource
	client   llm.Client
	logger   *zap.Logger
	randFunc func(n int) int
}

func NewAgent(store *Store, profiles ProfileSource, client llm.Client, logger *zap.Logger) *Agent {
	return &Agent{
		store:    store,
		profiles: profiles,
		client:   client,
		logger:   logger,
		randFunc: rand.Intn,
	}
}

// Greeting produces the opening system message for an empty conversation.
func (a *Agent) Greeting(ctx context.Context, userID string) models.ChatMessage {
	profile := a.profiles.Profile(ctx, userID)
	interactions := a.profiles.RecentInteractions(ctx, userID, greetingContext)

	prompt := fmt.Sprintf(`You are a warm, supportive companion inside a wellbeing app. Write a short greeting (2-3 sentences) to open a conversation with a user.

What you know about the user:
- overall mood lately: %s
- recent concern level: %d out of 10
%s
Be gentle and inviting. Do not mention that their activity is analyzed, do not mention scores or levels, and do not diagnose. Just open the door to a conversation.`,
		profile.DominantSentiment, profile.ConcernLevel, describeInteractions(interactions))

	text, err := a.client.Complete(ctx, prompt, &llm.GenerationParams{
		MaxTokens:   150,
		Temperature: 0.8,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			a.logger.Warn("Greeting generation failed, using canned greeting", zap.Error(err))
		}
		text = cannedGreetings[a.randFunc(len(cannedGreetings))]
	}

	return a.store.Append(ctx, userID, models.SenderSystem, strings.TrimSpace(text))
}

// Reply handles one user message: it is stored first, then a supportive
// answer is generated from the recent conversation, the risk profile, and
// recent interactions.
func (a *Agent) Reply(ctx context.Context, userID, message string) models.ChatMessage {
	a.store.Append(ctx, userID, models.SenderUser, message)

	profile := a.profiles.Profile(ctx, userID)
	interactions := a.profiles.RecentInteractions(ctx, userID, interactionContext)
	history := a.store.History(ctx, userID)
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	prompt := fmt.Sprintf(`You are a supportive companion inside a wellbeing app, talking with a user who may be going through a difficult time.

User context:
- overall mood lately: %s
- concern level: %d out of 10
- recurring themes: %s
%s
Recent conversation:
%s
Guidelines:
- Be concise and warm; a few sentences at most.
- Suggest simple, concrete coping strategies when it fits naturally.
- Only bring up emergency services or crisis lines if the user expresses explicit danger to themselves or others.
- Stay culturally neutral and never judge.
- Never mention that the app analyzes their activity.

Write your next reply to the user.`,
		profile.DominantSentiment,
		profile.ConcernLevel,
		strings.Join(profile.CommonTriggers, ", "),
		describeInteractions(interactions),
		describeHistory(history))

	text, err := a.client.Complete(ctx, prompt, &llm.GenerationParams{
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			a.logger.Warn("Reply generation failed, using fallback reply", zap.Error(err))
		}
		return a.store.Append(ctx, userID, models.SenderSystem, fallbackReply)
	}

	return a.store.Append(ctx, userID, models.SenderSystem, strings.TrimSpace(text))
}

func describeInteractions(interactions []models.InteractionEvent) string {
	if len(interactions) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("- recent activity:\n")
	for _, event := range interactions {
		title := event.PostData.Title
		if title == "" {
			title = event.PostID
		}
		fmt.Fprintf(&sb, "  - %s: %s\n", event.InteractionType, title)
	}
	return sb.String()
}

func describeHistory(history []models.ChatMessage) string {
	if len(history) == 0 {
		return "(none)\n"
	}
	var sb strings.Builder
	for _, msg := range history {
		role := "user"
		if msg.Sender == models.SenderSystem {
			role = "you"
		}
		fmt.Fprintf(&sb, "%s: %s\n", role, msg.Message)
	}
	return sb.String()
}
