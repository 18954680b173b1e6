package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"subaudit/internal/entity"
)

// maxJitterDays bounds the random component of the distribution offset
const maxJitterDays = 7 // jitter in [0, 7), i.e. 0..6 days

// auditWindowDays - length of the scheduling window per frequency; newly
// scheduled audits are spread across this window so they don't cluster on
// one calendar day.
func auditWindowDays(f entity.AuditFrequency) int {
	switch f {
	case entity.AuditMonthly:
		return 28
	case entity.AuditQuarterly:
		return 85
	case entity.AuditAnnually:
		return 350
	}
	return 0
}

// auditPeriodMonths - one frequency unit in calendar months
func auditPeriodMonths(f entity.AuditFrequency) int {
	switch f {
	case entity.AuditMonthly:
		return 1
	case entity.AuditQuarterly:
		return 3
	case entity.AuditAnnually:
		return 12
	}
	return 0
}

// AuditScheduler maintains the one-pending-audit-per-subscription
// lifecycle: initial scheduling, rescheduling on frequency change, and
// successor creation on completion.
type AuditScheduler struct {
	Ar  AuditRepository
	Log *slog.Logger
	// Jitter returns a pseudo-random int in [0, n); injected so tests can pin it
	Jitter func(n int) int
}

// NewAuditScheduler creates a scheduler with the default jitter source
func NewAuditScheduler(ar AuditRepository, log *slog.Logger) *AuditScheduler {
	return &AuditScheduler{Ar: ar, Log: log, Jitter: rand.Intn}
}

// ScheduleInitial replaces a subscription's pending audit with a fresh one
// due one frequency unit from today, plus the distribution offset. A nil
// result with nil error means auditing is disabled (frequency None).
func (s *AuditScheduler) ScheduleInitial(ctx context.Context, subscriptionID int64, f entity.AuditFrequency, today time.Time) (*entity.Audit, error) {
	if subscriptionID <= 0 {
		return nil, ErrInvalidID
	}
	if err := s.deletePending(ctx, subscriptionID); err != nil {
		return nil, err
	}
	if f == entity.AuditNone {
		return nil, nil
	}
	base := AddMonthsClamped(DateOnly(today), auditPeriodMonths(f))
	return s.createSpread(ctx, subscriptionID, f, base)
}

// ScheduleNext creates the successor of a completed audit, due one
// frequency unit after the completion date. No successor for frequency
// None. Nil result with nil error means no successor was needed.
func (s *AuditScheduler) ScheduleNext(ctx context.Context, completedAuditID int64) (*entity.Audit, error) {
	a, err := s.Ar.GetAuditByID(ctx, completedAuditID)
	if err != nil {
		return nil, err
	}
	if a.CompletedDate == nil {
		return nil, ErrAuditNotCompleted
	}
	// completing the pending audit should have cleared the slot already;
	// anything left violates the invariant and is removed
	if err := s.deletePending(ctx, a.SubscriptionID); err != nil {
		return nil, err
	}
	if a.Frequency == entity.AuditNone {
		return nil, nil
	}
	base := AddMonthsClamped(DateOnly(*a.CompletedDate), auditPeriodMonths(a.Frequency))
	return s.createSpread(ctx, a.SubscriptionID, a.Frequency, base)
}

// AuditCompletion - completion form payload applied to a pending audit
type AuditCompletion struct {
	CompletedDate time.Time
	Checklist     []entity.ChecklistItem
	Findings      string
	Snapshot      *entity.UsageSnapshot
}

// Complete marks a pending audit completed exactly once and schedules its
// successor. Returns the completed audit and the successor (nil when the
// frequency is None, or when successor creation failed; the completion is
// already persisted at that point and a client retry would only see the
// completed state, so the failure is logged instead of surfaced and the
// next frequency change restores the pending slot).
func (s *AuditScheduler) Complete(ctx context.Context, auditID int64, c AuditCompletion) (*entity.Audit, *entity.Audit, error) {
	a, err := s.Ar.GetAuditByID(ctx, auditID)
	if err != nil {
		return nil, nil, err
	}
	if a.CompletedDate != nil {
		return nil, nil, ErrAuditCompleted
	}

	done := DateOnly(c.CompletedDate)
	a.CompletedDate = &done
	if len(c.Checklist) > 0 {
		a.Checklist = c.Checklist
	}
	a.Findings = c.Findings
	a.Snapshot = c.Snapshot
	if err := s.Ar.CompleteAudit(ctx, a); err != nil {
		return nil, nil, fmt.Errorf("complete audit id=%d: %w", auditID, err)
	}

	next, err := s.ScheduleNext(ctx, a.ID)
	if err != nil {
		s.Log.Warn("successor scheduling failed after completion",
			slog.Int64("audit_id", a.ID),
			slog.Int64("subscription_id", a.SubscriptionID),
			slog.String("error", err.Error()))
		return a, nil, nil
	}
	return a, next, nil
}

// ListBySubscription returns all audits of a subscription
func (s *AuditScheduler) ListBySubscription(ctx context.Context, subscriptionID int64) ([]*entity.Audit, error) {
	return s.Ar.ListBySubscription(ctx, subscriptionID)
}

// createSpread creates the pending audit at base plus the distribution
// offset. The offset is derived from how many other pending audits already
// sit in the target window, stepped a week apart, plus bounded jitter, mod
// the window length. The audit is never scheduled before base.
func (s *AuditScheduler) createSpread(ctx context.Context, subscriptionID int64, f entity.AuditFrequency, base time.Time) (*entity.Audit, error) {
	window := auditWindowDays(f)
	count, err := s.Ar.CountPendingInWindow(ctx, base, base.AddDate(0, 0, window), subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("count pending audits: %w", err)
	}
	offset := (count*7 + s.Jitter(maxJitterDays)) % window

	a := &entity.Audit{
		SubscriptionID: subscriptionID,
		ScheduledDate:  base.AddDate(0, 0, offset),
		Frequency:      f,
		Checklist:      entity.DefaultChecklist(),
	}
	created, err := s.Ar.CreateAudit(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create audit: %w", err)
	}
	s.Log.Info("audit scheduled",
		slog.Int64("subscription_id", subscriptionID),
		slog.String("frequency", string(f)),
		slog.Time("scheduled_date", created.ScheduledDate),
		slog.Int("offset_days", offset))
	return created, nil
}

// deletePending clears every pending audit of the subscription. Finding
// more than one is an invariant violation; it is logged and healed, never
// surfaced as an error.
func (s *AuditScheduler) deletePending(ctx context.Context, subscriptionID int64) error {
	pending, err := s.Ar.ListPendingBySubscription(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("list pending audits: %w", err)
	}
	if len(pending) > 1 {
		s.Log.Warn("multiple pending audits found, healing",
			slog.Int64("subscription_id", subscriptionID),
			slog.Int("count", len(pending)))
	}
	for _, p := range pending {
		if err := s.Ar.DeleteAudit(ctx, p.ID); err != nil {
			return fmt.Errorf("delete pending audit id=%d: %w", p.ID, err)
		}
	}
	return nil
}
