package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/healthara/backend/internal/service"
)

type ExportHandler struct {
	uploader ExportUploader
	now      func() time.Time
}

// NewExportHandler creates an export handler; uploader may be nil
func NewExportHandler(uploader ExportUploader) *ExportHandler {
	return &ExportHandler{uploader: uploader, now: time.Now}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/export", h.Download)
	router.POST("/export/upload", h.Upload)
}

// Download returns the profile and saved conversations as a JSON attachment
func (h *ExportHandler) Download(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}

	now := h.now()
	data, err := service.MarshalExport(s.Export(now))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.ExportFilename(now)))
	c.Data(http.StatusOK, "application/json", data)
}

// Upload stores the export in object storage and returns a temporary link
func (h *ExportHandler) Upload(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export upload is not configured"})
		return
	}

	now := h.now()
	data, err := service.MarshalExport(s.Export(now))
	if err != nil {
		_ = c.Error(err)
		return
	}

	filename := service.ExportFilename(now)
	key, url, err := h.uploader.Upload(c.Request.Context(), s.ID, filename, data)
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("Export upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload export"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"filename": filename, "key": key, "url": url})
}
