package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cfg "subaudit/internal/config"
	"subaudit/internal/gateways/http/mw"
	"subaudit/internal/usecase"
)

// renewalItemResponse - per-subscription outcome in the trigger summary
type renewalItemResponse struct {
	SubscriptionID int64  `json:"subscription_id"`
	ServiceName    string `json:"service_name"`
	Renewed        bool   `json:"renewed"`
	NewRenewalDate string `json:"new_renewal_date,omitempty"`
	Error          string `json:"error,omitempty"`
}

// renewalRunResponse - structured summary of one batch run
type renewalRunResponse struct {
	RenewedCount   int                   `json:"renewed_count"`
	TotalProcessed int                   `json:"total_processed"`
	Items          []renewalItemResponse `json:"items"`
}

func toRunResponse(res *usecase.RenewalBatchResult) renewalRunResponse {
	out := renewalRunResponse{
		RenewedCount:   res.RenewedCount,
		TotalProcessed: res.TotalProcessed,
		Items:          make([]renewalItemResponse, 0, len(res.Items)),
	}
	for _, it := range res.Items {
		item := renewalItemResponse{
			SubscriptionID: it.SubscriptionID,
			ServiceName:    it.ServiceName,
			Renewed:        it.Renewed,
			Error:          it.Err,
		}
		if it.Renewed {
			item.NewRenewalDate = it.NewRenewalDate.Format(dateLayout)
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func setupRenewals(r *gin.RouterGroup, u UseCases, c cfg.Config) {
	// manual trigger: identical logic to the daily scheduler run.
	// Per-item failures still yield 200 with the summary; only an
	// unreadable candidate list is fatal.
	r.POST("/renewals/run", mw.RequireAdmin(), func(ctx *gin.Context) {
		if !requireAcceptJSON(ctx) {
			return
		}
		res, err := u.Renewal.ProcessDue(ctx, u.Now())
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		ctx.JSON(http.StatusOK, toRunResponse(res))
	})

	r.GET("/renewals/status", func(ctx *gin.Context) {
		if !requireAcceptJSON(ctx) {
			return
		}
		o, err := u.Renewal.Outlook(ctx, u.Now())
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		var next string
		if o.NextRenewal != nil {
			next = o.NextRenewal.Format(dateLayout)
		}
		ctx.JSON(http.StatusOK, gin.H{
			"due_today":               o.DueToday,
			"due_this_week":           o.DueThisWeek,
			"upcoming_in_next_30days": o.UpcomingInNext30Days,
			"next_renewal":            next,
			"scheduler": gin.H{
				"run_at":   c.Scheduler.RunAt,
				"timezone": c.Scheduler.Timezone,
			},
		})
	})

	r.POST("/subscriptions/:id/renew", mw.RequireAdmin(), func(ctx *gin.Context) {
		if !requireAcceptJSON(ctx) {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var body struct {
			Note string `json:"note"`
		}
		if ctx.Request.ContentLength > 0 {
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		sub, err := u.Renewal.RenewNow(ctx, id, body.Note)
		switch {
		case errors.Is(err, usecase.ErrSubscriptionNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		case errors.Is(err, usecase.ErrCannotRenewOneTime):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		case err != nil:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		ctx.JSON(http.StatusOK, toSubscriptionResponse(sub))
	})
}
