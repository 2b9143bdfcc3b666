package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthara/backend/internal/models"
	"github.com/pageza/healthara/backend/internal/service"
	"github.com/pageza/healthara/backend/internal/session"
	"github.com/pageza/healthara/backend/internal/types"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("/personal", h.UpdatePersonalInfo)
		profile.PUT("/medical", h.UpdateMedicalHistory)
		profile.PUT("/goals", h.UpdateHealthGoals)
		profile.PUT("/diet", h.UpdateDietPreferences)
		profile.GET("/summary", h.GetSummary)
		profile.GET("/tips", h.GetTips)
	}
	router.GET("/vocabulary", h.GetVocabulary)
	router.POST("/diet/analyze", h.AnalyzeDiet)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}

	profile := s.Profile()
	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"summary":  profile.Summary(),
		"insights": service.BuildInsights(profile),
	})
}

func (h *ProfileHandler) UpdatePersonalInfo(c *gin.Context) {
	var req types.PersonalInfoUpdate
	applyUpdate(c, &req, func(ctx context.Context, s *session.Session) error {
		return s.UpdatePersonalInfo(ctx, req)
	})
}

func (h *ProfileHandler) UpdateMedicalHistory(c *gin.Context) {
	var req types.MedicalHistoryUpdate
	applyUpdate(c, &req, func(ctx context.Context, s *session.Session) error {
		return s.UpdateMedicalHistory(ctx, req)
	})
}

func (h *ProfileHandler) UpdateHealthGoals(c *gin.Context) {
	var req types.HealthGoalsUpdate
	applyUpdate(c, &req, func(ctx context.Context, s *session.Session) error {
		return s.UpdateHealthGoals(ctx, req)
	})
}

func (h *ProfileHandler) UpdateDietPreferences(c *gin.Context) {
	var req types.DietPreferencesUpdate
	applyUpdate(c, &req, func(ctx context.Context, s *session.Session) error {
		return s.UpdateDietPreferences(ctx, req)
	})
}

// applyUpdate binds the body into req and runs update against the session.
// A failed save still answers 200 since the change is live for the session.
func applyUpdate(c *gin.Context, req any, update func(context.Context, *session.Session) error) {
	s, ok := requireSession(c)
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := update(c.Request.Context(), s)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	case errors.Is(err, service.ErrPersistFailed):
		profile := s.Profile()
		c.JSON(http.StatusOK, gin.H{
			"message": "profile updated for this session but could not be saved",
			"warning": err.Error(),
			"profile": profile,
			"summary": profile.Summary(),
		})
		return
	case err != nil:
		_ = c.Error(err)
		return
	}

	profile := s.Profile()
	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated successfully",
		"profile": profile,
		"summary": profile.Summary(),
	})
}

func (h *ProfileHandler) GetSummary(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": s.Summary()})
}

func (h *ProfileHandler) GetTips(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service.BuildInsights(s.Profile()))
}

func (h *ProfileHandler) GetVocabulary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"genders":              models.Genders,
		"activity_levels":      models.ActivityLevels,
		"primary_goals":        models.PrimaryGoals,
		"common_allergies":     models.CommonAllergies,
		"dietary_restrictions": models.DietaryRestrictions,
	})
}

func (h *ProfileHandler) AnalyzeDiet(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}

	var req types.AnalyzeDietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foods is required"})
		return
	}

	c.JSON(http.StatusOK, service.AnalyzeDietCompatibility(req.Foods, s.Profile()))
}
