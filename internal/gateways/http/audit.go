package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"subaudit/internal/gateways/http/mw"
	"subaudit/internal/usecase"
)

func setupAudits(r *gin.RouterGroup, u UseCases) {
	r.POST("/audits/:id/complete", mw.RequireAdmin(), func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		var input auditCompletionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		completion := usecase.AuditCompletion{
			CompletedDate: u.Now(),
			Checklist:     input.Checklist,
			Findings:      input.Findings,
			Snapshot:      input.Snapshot,
		}
		if input.CompletedDate != "" {
			t, err := parseDate(input.CompletedDate)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid completed_date"})
				return
			}
			completion.CompletedDate = t
		}

		done, next, err := u.Audits.Complete(c, id, completion)
		switch {
		case errors.Is(err, usecase.ErrAuditNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case errors.Is(err, usecase.ErrAuditCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "audit already completed"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := gin.H{"audit": toAuditResponse(done)}
		if next != nil {
			resp["next_audit"] = toAuditResponse(next)
		}
		c.JSON(http.StatusOK, resp)
	})
}
