package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SessionHandler struct {
	sessions SessionManager
}

func NewSessionHandler(sessions SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/session", h.Start)
	protected.DELETE("/session", h.End)
}

// Start loads the stored profile into a new session and hands out its token
func (h *SessionHandler) Start(c *gin.Context) {
	s, token, err := h.sessions.Start(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to start session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"token":      token,
		"profile":    s.Profile(),
		"summary":    s.Summary(),
	})
}

func (h *SessionHandler) End(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}

	h.sessions.End(s.ID)
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}
