package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	cfg "subaudit/internal/config"
	"subaudit/internal/gateways/http/mw"
	"subaudit/internal/usecase"
)

func setupRouter(r *gin.Engine, u UseCases, c cfg.Config) {
	r.HandleMethodNotAllowed = true

	r.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	v1 := r.Group("api/v1/", mw.Identity(u.Users))
	setupSubscriptions(v1, u)
	setupRenewals(v1, u, c)
	setupAudits(v1, u)
	setupPreferences(v1, u)
}

func setupSubscriptions(r *gin.RouterGroup, u UseCases) {
	r.GET("/subscriptions", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}

		var f usecase.SubFilter
		if svc := c.Query("service_name"); svc != "" {
			f.ServiceName = &svc
		}
		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 0 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid limit"})
				return
			}
			f.Limit = limit
		}
		if offsetStr := c.Query("offset"); offsetStr != "" {
			offset, err := strconv.Atoi(offsetStr)
			if err != nil || offset < 0 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid offset"})
				return
			}
			f.Offset = offset
		}

		subs, err := u.Sub.ListSubs(c, mw.CurrentUser(c), f)
		switch {
		case errors.Is(err, usecase.ErrInvalidPagination):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid pagination"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := make([]subscriptionResponse, 0, len(subs))
		for _, s := range subs {
			resp = append(resp, toSubscriptionResponse(s))
		}
		c.JSON(http.StatusOK, resp)
	})

	r.POST("/subscriptions", mw.RequireAdmin(), func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		if c.ContentType() != "" && c.ContentType() != "application/json" {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Use application/json"})
			return
		}

		var input subscriptionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sub, err := input.toEntity()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		created, err := u.Sub.RegisterSub(c, sub, u.Now())
		switch {
		case errors.Is(err, usecase.ErrInvalidSubscription):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, toSubscriptionResponse(created))
	})

	r.GET("/subscriptions/:id", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		sub, err := u.Sub.GetSubByID(c, mw.CurrentUser(c), id)
		switch {
		case errors.Is(err, usecase.ErrInvalidID):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid id"})
			return
		case errors.Is(err, usecase.ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, toSubscriptionResponse(sub))
	})

	r.PUT("/subscriptions/:id", mw.RequireAdmin(), func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		var input subscriptionPatchInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch, err := input.toPatch()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		updated, err := u.Sub.UpdateSub(c, id, patch, u.Now())
		switch {
		case errors.Is(err, usecase.ErrInvalidSubscription):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		case errors.Is(err, usecase.ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, toSubscriptionResponse(updated))
	})

	r.DELETE("/subscriptions/:id", mw.RequireAdmin(), func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		deleted, err := u.Sub.DeleteSub(c, id)
		switch {
		case errors.Is(err, usecase.ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, toSubscriptionResponse(deleted))
	})

	r.GET("/subscriptions/:id/history", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		entries, err := u.Sub.ListHistory(c, mw.CurrentUser(c), id)
		switch {
		case errors.Is(err, usecase.ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := make([]historyResponse, 0, len(entries))
		for _, h := range entries {
			resp = append(resp, toHistoryResponse(h))
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/subscriptions/:id/audits", func(c *gin.Context) {
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		audits, err := u.Sub.ListAudits(c, mw.CurrentUser(c), id)
		switch {
		case errors.Is(err, usecase.ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		resp := make([]auditResponse, 0, len(audits))
		for _, a := range audits {
			resp = append(resp, toAuditResponse(a))
		}
		c.JSON(http.StatusOK, resp)
	})
}

// pathID parses the :id path segment, replying 422 itself on garbage
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func acceptsJSON(h string) bool {
	if h == "" || h == "*/*" {
		return true
	}
	parts := strings.Split(h, ",")
	for _, p := range parts {
		mt := strings.TrimSpace(strings.SplitN(p, ";", 2)[0])
		if mt == "application/json" || mt == "*/*" {
			return true
		}
	}
	return false
}

func requireAcceptJSON(c *gin.Context) bool {
	if acceptsJSON(c.GetHeader("Accept")) {
		return true
	}
	c.JSON(http.StatusNotAcceptable, gin.H{"error": "Accept application/json only"})
	return false
}
