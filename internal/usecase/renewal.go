package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"subaudit/internal/entity"
)

// Renewal rolls subscription contract periods forward when their renewal
// date arrives. ProcessDue is invoked identically by the daily scheduler,
// the manual trigger endpoint, and tests; the caller supplies "today".
type Renewal struct {
	Sr  SubscriptionRepository
	Log *slog.Logger
}

// NewRenewal creates the renewal engine with the given repository
func NewRenewal(sr SubscriptionRepository, log *slog.Logger) *Renewal {
	return &Renewal{Sr: sr, Log: log}
}

// RenewalItem - per-subscription outcome of a renewal batch
type RenewalItem struct {
	SubscriptionID int64
	ServiceName    string
	Renewed        bool
	// NewRenewalDate - set when Renewed
	NewRenewalDate time.Time
	// Err - non-fatal per-item error message, empty on success
	Err string
}

// RenewalBatchResult - summary of one ProcessDue run
type RenewalBatchResult struct {
	TotalProcessed int
	RenewedCount   int
	Items          []RenewalItem
}

// ProcessDue renews every auto-renewing subscription whose renewal date
// has arrived. Items fail independently; one subscription's error never
// aborts the rest. Running twice on the same day renews nothing extra:
// after a renewal the new renewal date is strictly in the future, even
// when the subscription was several whole periods overdue.
func (r *Renewal) ProcessDue(ctx context.Context, today time.Time) (*RenewalBatchResult, error) {
	today = DateOnly(today)
	subs, err := r.Sr.ListDueForRenewal(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list due subscriptions: %w", err)
	}

	res := &RenewalBatchResult{Items: make([]RenewalItem, 0, len(subs))}
	for _, sub := range subs {
		res.TotalProcessed++
		item := RenewalItem{SubscriptionID: sub.ID, ServiceName: sub.ServiceName}

		switch {
		case sub.Cadence == entity.CadenceOneTime:
			// autoRenewal=true on a one-time contract is bad data, not a batch failure
			item.Err = ErrCannotRenewOneTime.Error()
			r.Log.Warn("skipping one-time subscription in renewal batch",
				slog.Int64("subscription_id", sub.ID))
		default:
			renewed, err := r.catchUp(ctx, sub, today)
			if err != nil {
				item.Err = err.Error()
				r.Log.Error("renewal failed",
					slog.Int64("subscription_id", sub.ID),
					slog.String("error", err.Error()))
			} else {
				item.Renewed = true
				item.NewRenewalDate = renewed.RenewalDate
				res.RenewedCount++
			}
		}
		res.Items = append(res.Items, item)
	}

	r.Log.Info("renewal batch finished",
		slog.Int("processed", res.TotalProcessed),
		slog.Int("renewed", res.RenewedCount))
	return res, nil
}

// RenewNow rolls one subscription's contract forward on demand,
// independent of the daily batch. Same atomic update path, history status
// "Renewed" instead of "Auto-Renewed".
func (r *Renewal) RenewNow(ctx context.Context, id int64, note string) (*entity.Subscription, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	sub, err := r.Sr.GetSubByID(ctx, id, Scope{Kind: ScopeAll})
	if err != nil {
		return nil, err
	}
	if sub.Cadence == entity.CadenceOneTime {
		return nil, ErrCannotRenewOneTime
	}
	return r.renewOne(ctx, sub, entity.ContractRenewed, note)
}

// catchUp rolls the contract forward until the renewal date is strictly
// after today. A subscription several periods overdue produces one history
// entry per rolled period; each roll is its own atomic repository call, so
// a mid-catch-up failure leaves the completed rolls behind and the next
// run continues from there.
func (r *Renewal) catchUp(ctx context.Context, sub *entity.Subscription, today time.Time) (*entity.Subscription, error) {
	cur := sub
	for {
		renewed, err := r.renewOne(ctx, cur, entity.ContractAutoRenewed, "")
		if err != nil {
			return nil, err
		}
		if renewed.RenewalDate.After(today) {
			return renewed, nil
		}
		cur = renewed
	}
}

// Outlook returns due counts for the status endpoint
func (r *Renewal) Outlook(ctx context.Context, today time.Time) (*RenewalOutlook, error) {
	return r.Sr.RenewalOutlook(ctx, DateOnly(today))
}

// renewOne archives the current period and shifts the contract by one
// cadence unit, in one atomic repository call.
func (r *Renewal) renewOne(ctx context.Context, sub *entity.Subscription, status entity.ContractStatus, note string) (*entity.Subscription, error) {
	if sub.RenewalDate.Before(sub.ContractStartDate) {
		// a stored period must never have negative length
		r.Log.Warn("renewal date precedes contract start",
			slog.Int64("subscription_id", sub.ID),
			slog.Time("contract_start", sub.ContractStartDate),
			slog.Time("renewal_date", sub.RenewalDate))
	}

	next := AdvanceCadence(sub.RenewalDate, sub.Cadence)
	entry := &entity.ContractHistoryEntry{
		SubscriptionID:    sub.ID,
		ContractStartDate: sub.ContractStartDate,
		ContractEndDate:   sub.RenewalDate,
		Cost:              sub.Cost,
		Cadence:           sub.Cadence,
		NoticePeriodDays:  sub.NoticePeriodDays,
		AutoRenewal:       sub.AutoRenewal,
		Status:            status,
		Note:              note,
	}

	updated := *sub
	updated.ContractStartDate = sub.RenewalDate
	updated.RenewalDate = next

	if err := r.Sr.RenewContract(ctx, &updated, entry); err != nil {
		return nil, fmt.Errorf("renew contract id=%d: %w", sub.ID, err)
	}
	return &updated, nil
}

// AdvanceCadence advances a date by one cadence unit. Day-of-month is
// preserved where the target month allows it and clamped to the month's
// last day otherwise (Jan 31 + 1 month = Feb 28/29).
func AdvanceCadence(d time.Time, c entity.Cadence) time.Time {
	switch c {
	case entity.CadenceAnnually:
		return AddMonthsClamped(d, 12)
	default:
		return AddMonthsClamped(d, 1)
	}
}

// AddMonthsClamped adds calendar months, clamping the day to the target
// month's length instead of letting it overflow into the next month.
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
