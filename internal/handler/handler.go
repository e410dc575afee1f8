// Package handler contains the HTTP glue over the engine services.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/chat"
	"github.com/havenapp/wellspring/internal/models"
	"github.com/havenapp/wellspring/internal/resources"
	"github.com/havenapp/wellspring/internal/sentiment"
)

type Handler struct {
	sentiments *sentiment.Service
	cache      *resources.Cache
	chatStore  *chat.Store
	agent      *chat.Agent
	logger     *zap.Logger
}

func New(sentiments *sentiment.Service, cache *resources.Cache, chatStore *chat.Store, agent *chat.Agent, logger *zap.Logger) *Handler {
	return &Handler{
		sentiments: sentiments,
		cache:      cache,
		chatStore:  chatStore,
		agent:      agent,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/users/:id")
	{
		api.POST("/content", h.ProcessContent)
		api.POST("/interactions", h.RecordInteraction)
		api.GET("/profile", h.GetProfile)
		api.GET("/resources", h.GetResources)
		api.GET("/chat", h.GetChat)
		api.POST("/chat", h.PostChat)
		api.DELETE("/chat", h.ClearChat)
		api.DELETE("/score", h.ResetScore)
	}
}

type contentRequest struct {
	PostID      string   `json:"postId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ProcessContent classifies a user's own post and folds it into their score.
func (h *Handler) ProcessContent(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request body", "data": nil})
		return
	}

	userID := c.Param("id")
	result, escalate := h.sentiments.ProcessContent(c.Request.Context(), userID, req.PostID, models.PostData{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"classification": result,
		"escalate":       escalate,
	}})
}

type interactionRequest struct {
	PostID          string                 `json:"postId"`
	PostData        models.PostData        `json:"postData"`
	InteractionType models.InteractionType `json:"interactionType"`
}

// RecordInteraction folds a like/comment/post event into the user's score.
func (h *Handler) RecordInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request body", "data": nil})
		return
	}
	switch req.InteractionType {
	case models.InteractionPost, models.InteractionLike, models.InteractionComment:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "unknown interaction type", "data": nil})
		return
	}

	userID := c.Param("id")
	escalate := h.sentiments.RecordInteraction(c.Request.Context(), userID, models.InteractionEvent{
		PostID:          req.PostID,
		PostData:        req.PostData,
		InteractionType: req.InteractionType,
	})

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"escalate": escalate,
	}})
}

// GetProfile returns the projected risk profile and the support hint used to
// decide whether to offer the chat.
func (h *Handler) GetProfile(c *gin.Context) {
	profile := h.sentiments.Profile(c.Request.Context(), c.Param("id"))

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"profile":      profile,
		"needsSupport": sentiment.ProfileNeedsSupport(profile),
	}})
}

// GetResources returns the (possibly cached) support resource list.
func (h *Handler) GetResources(c *gin.Context) {
	ctx := c.Request.Context()
	profile := h.sentiments.Profile(ctx, c.Param("id"))
	list := h.cache.GetResources(ctx, profile)

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"resources": list,
	}})
}

// GetChat returns the conversation history, generating the opening greeting
// when the conversation is empty.
func (h *Handler) GetChat(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")

	history := h.chatStore.History(ctx, userID)
	if len(history) == 0 {
		history = []models.ChatMessage{h.agent.Greeting(ctx, userID)}
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"messages": history,
	}})
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// PostChat appends the user message and returns the generated reply.
func (h *Handler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "message is required", "data": nil})
		return
	}

	ctx := c.Request.Context()
	userID := c.Param("id")
	reply := h.agent.Reply(ctx, userID, req.Message)
	profile := h.sentiments.Profile(ctx, userID)

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"reply":        reply,
		"needsSupport": sentiment.ProfileNeedsSupport(profile),
	}})
}

// ClearChat deletes the conversation log.
func (h *Handler) ClearChat(c *gin.Context) {
	if err := h.chatStore.Clear(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("Failed to clear conversation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to clear conversation", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// ResetScore removes the user's accumulated score state.
func (h *Handler) ResetScore(c *gin.Context) {
	if err := h.sentiments.ResetScore(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("Failed to reset score state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to reset score", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
