package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"subaudit/internal/entity"
	"subaudit/internal/gateways/http/mw"
	"subaudit/internal/usecase"
)

func setupPreferences(r *gin.RouterGroup, u UseCases) {
	r.GET("/users/:id/preferences", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		userID, ok := pathUserID(c)
		if !ok {
			return
		}

		prefs, err := u.Notifier.ListPreferences(c, mw.CurrentUser(c), userID)
		switch {
		case errors.Is(err, usecase.ErrNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := make([]preferenceResponse, 0, len(prefs))
		for _, p := range prefs {
			resp = append(resp, toPreferenceResponse(p))
		}
		c.JSON(http.StatusOK, resp)
	})

	r.PUT("/users/:id/preferences/:type", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		userID, ok := pathUserID(c)
		if !ok {
			return
		}

		var input preferenceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pref := &entity.NotificationPreference{
			UserID:               userID,
			Type:                 entity.NotificationType(c.Param("type")),
			Enabled:              input.Enabled,
			DaysBefore:           input.DaysBefore,
			UtilizationThreshold: input.UtilizationThreshold,
			OverrideEmail:        input.OverrideEmail,
		}

		stored, err := u.Notifier.UpsertPreference(c, mw.CurrentUser(c), pref)
		switch {
		case errors.Is(err, usecase.ErrNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
			return
		case errors.Is(err, usecase.ErrInvalidPreference):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, toPreferenceResponse(stored))
	})
}

// pathUserID parses the :id path segment as a UUID, replying 422 itself
// on garbage
func pathUserID(c *gin.Context) (strfmt.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid user id"})
		return "", false
	}
	return strfmt.UUID(id.String()), true
}
