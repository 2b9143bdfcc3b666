package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthara/backend/internal/middleware"
	"github.com/pageza/healthara/backend/internal/session"
)

// SessionManager starts, resolves and ends sessions
type SessionManager interface {
	middleware.SessionAuthenticator
	Start(ctx context.Context) (*session.Session, string, error)
	End(id string) bool
}

// ExportUploader stores an export document and returns its key and a download URL
type ExportUploader interface {
	Upload(ctx context.Context, sessionID, filename string, data []byte) (string, string, error)
}

// Dependencies are the collaborators the handlers need. ChatLimiter and
// Uploader are optional.
type Dependencies struct {
	Sessions    SessionManager
	ChatLimiter *middleware.RateLimiter
	Uploader    ExportUploader
}

// RegisterRoutes registers all API routes on the v1 group
func RegisterRoutes(v1 *gin.RouterGroup, deps Dependencies) {
	v1.GET("/health", HealthCheck)

	protected := v1.Group("")
	protected.Use(middleware.SessionAuth(deps.Sessions))

	NewSessionHandler(deps.Sessions).RegisterRoutes(v1, protected)
	NewProfileHandler().RegisterRoutes(protected)
	NewChatHandler(deps.ChatLimiter).RegisterRoutes(protected)
	NewExportHandler(deps.Uploader).RegisterRoutes(protected)
	NewMCPHandler().RegisterRoutes(protected)
}
