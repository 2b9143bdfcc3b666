package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/healthara/backend/internal/middleware"
	"github.com/pageza/healthara/backend/internal/types"
)

const recentHistoryLimit = 5

type ChatHandler struct {
	limiter *middleware.RateLimiter
	now     func() time.Time
}

// NewChatHandler creates a chat handler; limiter may be nil
func NewChatHandler(limiter *middleware.RateLimiter) *ChatHandler {
	return &ChatHandler{limiter: limiter, now: time.Now}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		ask := []gin.HandlerFunc{h.Ask}
		if h.limiter != nil {
			ask = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, ask...)
		}
		chat.POST("", ask...)
		chat.GET("", h.GetConversation)
		chat.DELETE("", h.ClearConversation)
		chat.POST("/save", h.SaveConversation)
		chat.GET("/history", h.GetHistory)
	}
}

// Ask answers a question with the personalized prompt. The answer streams
// as server-sent events unless ?stream=false is given.
func (h *ChatHandler) Ask(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	query := req.Query

	if c.Query("stream") == "false" {
		answer, err := s.Ask(c.Request.Context(), query, nil)
		if err != nil {
			log.Error().Err(err).Str("session_id", s.ID).Msg("Chat completion failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Error generating response: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"response": answer, "conversation": s.Conversation()})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	answer, err := s.Ask(c.Request.Context(), query, func(delta string) {
		c.SSEvent("delta", gin.H{"content": delta})
		c.Writer.Flush()
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("Chat completion failed")
		c.SSEvent("error", gin.H{"message": "Error generating response: " + err.Error()})
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", gin.H{"response": answer})
	c.Writer.Flush()
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": s.Conversation()})
}

func (h *ChatHandler) ClearConversation(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}
	s.ClearConversation()
	c.JSON(http.StatusOK, gin.H{"message": "conversation cleared"})
}

func (h *ChatHandler) SaveConversation(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}

	if !s.SaveConversation(h.now()) {
		c.JSON(http.StatusOK, gin.H{"saved": false, "message": "nothing to save"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"saved": true, "message": "conversation saved"})
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": s.RecentHistory(recentHistoryLimit)})
}
