package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthara/backend/internal/session"
)

const (
	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// SessionAuthenticator resolves a bearer token to a live session
type SessionAuthenticator interface {
	Authenticate(token string) (*session.Session, error)
}

// SessionAuth creates a middleware that requires a valid session token
func SessionAuth(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		s, err := auth.Authenticate(parts[1])
		if err != nil {
			msg := "invalid session token"
			if errors.Is(err, session.ErrSessionNotFound) {
				msg = "session expired, start a new one"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set(sessionKey, s)
		c.Set(sessionIDKey, s.ID)
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionAuth
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
