package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"subaudit/internal/entity"
)

// Subscription coordinates scoped subscription CRUD and keeps the audit
// schedule in step with audit-frequency changes.
type Subscription struct {
	Sr    SubscriptionRepository
	Sched *AuditScheduler
	Log   *slog.Logger
}

// NewSubscription creates the subscription service
func NewSubscription(sr SubscriptionRepository, sched *AuditScheduler, log *slog.Logger) *Subscription {
	return &Subscription{Sr: sr, Sched: sched, Log: log}
}

// SubscriptionPatch - explicit optional-field update for a subscription.
// Nil fields are left unchanged; set fields are validated before applying.
type SubscriptionPatch struct {
	ServiceName       *string
	Cost              *decimal.Decimal
	Cadence           *entity.Cadence
	ContractStartDate *time.Time
	RenewalDate       *time.Time
	NoticePeriodDays  *int
	AutoRenewal       *bool
	LicenseType       *entity.LicenseType
	SeatsPurchased    *int
	SeatsUtilized     *int
	UsageMetric       *string
	UsageLimit        *int64
	CurrentUsage      *int64
	SitesLicensed     *int
	AuditFrequency    *entity.AuditFrequency
	OwnerID           *strfmt.UUID
	DepartmentIDs     *[]int64
}

// RegisterSub validates and saves a new subscription, then schedules its
// first audit according to its audit frequency.
func (s *Subscription) RegisterSub(ctx context.Context, sub *entity.Subscription, today time.Time) (*entity.Subscription, error) {
	if err := validateAndNormalize(sub); err != nil {
		return nil, err
	}
	created, err := s.Sr.SaveSub(ctx, sub)
	if err != nil {
		return nil, err
	}
	if _, err := s.Sched.ScheduleInitial(ctx, created.ID, created.AuditFrequency, today); err != nil {
		// subscription stands; the audit slot can be repaired by a later frequency update
		s.Log.Error("initial audit scheduling failed",
			slog.Int64("subscription_id", created.ID),
			slog.String("error", err.Error()))
	}
	return created, nil
}

// UpdateSub applies a patch to a subscription. Changing the audit
// frequency replaces the pending audit (delete-then-create); changing it
// to None deletes the pending audit.
func (s *Subscription) UpdateSub(ctx context.Context, id int64, patch SubscriptionPatch, today time.Time) (*entity.Subscription, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	sub, err := s.Sr.GetSubByID(ctx, id, Scope{Kind: ScopeAll})
	if err != nil {
		return nil, err
	}

	oldFreq := sub.AuditFrequency
	applyPatch(sub, patch)
	if err := validateAndNormalize(sub); err != nil {
		return nil, err
	}
	if err := s.Sr.UpdateSub(ctx, sub); err != nil {
		return nil, err
	}

	if sub.AuditFrequency != oldFreq {
		if _, err := s.Sched.ScheduleInitial(ctx, sub.ID, sub.AuditFrequency, today); err != nil {
			s.Log.Error("audit reschedule failed",
				slog.Int64("subscription_id", sub.ID),
				slog.String("error", err.Error()))
		}
	}
	return s.Sr.GetSubByID(ctx, id, Scope{Kind: ScopeAll})
}

// DeleteSub removes a subscription and returns the previously stored record
func (s *Subscription) DeleteSub(ctx context.Context, id int64) (*entity.Subscription, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	existing, err := s.Sr.GetSubByID(ctx, id, Scope{Kind: ScopeAll})
	if err != nil {
		return nil, err
	}
	if err := s.Sr.DeleteSub(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetSubByID fetches a subscription visible to the acting user. A record
// outside the user's scope reports not-found, never forbidden.
func (s *Subscription) GetSubByID(ctx context.Context, actor *entity.User, id int64) (*entity.Subscription, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.Sr.GetSubByID(ctx, id, ScopeFor(actor))
}

// ListSubs lists subscriptions visible to the acting user
func (s *Subscription) ListSubs(ctx context.Context, actor *entity.User, f SubFilter) ([]*entity.Subscription, error) {
	nf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.Sr.ListSubs(ctx, ScopeFor(actor), nf)
}

// ListHistory returns the contract history of a subscription the acting
// user can see.
func (s *Subscription) ListHistory(ctx context.Context, actor *entity.User, id int64) ([]*entity.ContractHistoryEntry, error) {
	if _, err := s.GetSubByID(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Sr.ListHistory(ctx, id)
}

// ListAudits returns the audits of a subscription the acting user can see
func (s *Subscription) ListAudits(ctx context.Context, actor *entity.User, id int64) ([]*entity.Audit, error) {
	if _, err := s.GetSubByID(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.Sched.ListBySubscription(ctx, id)
}

func applyPatch(sub *entity.Subscription, p SubscriptionPatch) {
	if p.ServiceName != nil {
		sub.ServiceName = *p.ServiceName
	}
	if p.Cost != nil {
		sub.Cost = *p.Cost
	}
	if p.Cadence != nil {
		sub.Cadence = *p.Cadence
	}
	if p.ContractStartDate != nil {
		sub.ContractStartDate = *p.ContractStartDate
	}
	if p.RenewalDate != nil {
		sub.RenewalDate = *p.RenewalDate
	}
	if p.NoticePeriodDays != nil {
		sub.NoticePeriodDays = *p.NoticePeriodDays
	}
	if p.AutoRenewal != nil {
		sub.AutoRenewal = *p.AutoRenewal
	}
	if p.LicenseType != nil {
		sub.LicenseType = *p.LicenseType
	}
	if p.SeatsPurchased != nil {
		sub.SeatsPurchased = *p.SeatsPurchased
	}
	if p.SeatsUtilized != nil {
		sub.SeatsUtilized = *p.SeatsUtilized
	}
	if p.UsageMetric != nil {
		sub.UsageMetric = *p.UsageMetric
	}
	if p.UsageLimit != nil {
		sub.UsageLimit = *p.UsageLimit
	}
	if p.CurrentUsage != nil {
		sub.CurrentUsage = *p.CurrentUsage
	}
	if p.SitesLicensed != nil {
		sub.SitesLicensed = *p.SitesLicensed
	}
	if p.AuditFrequency != nil {
		sub.AuditFrequency = *p.AuditFrequency
	}
	if p.OwnerID != nil {
		sub.OwnerID = *p.OwnerID
	}
	if p.DepartmentIDs != nil {
		sub.DepartmentIDs = *p.DepartmentIDs
	}
}

// validateAndNormalize enforces business rules and truncates dates to
// date-only values.
func validateAndNormalize(sub *entity.Subscription) error {
	if sub == nil {
		return fmt.Errorf("%w: nil", ErrInvalidSubscription)
	}
	sub.ServiceName = strings.TrimSpace(sub.ServiceName)
	if sub.ServiceName == "" {
		return fmt.Errorf("%w: empty service_name", ErrInvalidSubscription)
	}
	if sub.Cost.IsNegative() {
		return fmt.Errorf("%w: negative cost", ErrInvalidSubscription)
	}
	if !sub.Cadence.Valid() {
		return fmt.Errorf("%w: unknown cadence %q", ErrInvalidSubscription, sub.Cadence)
	}
	if !sub.LicenseType.Valid() {
		return fmt.Errorf("%w: unknown license type %q", ErrInvalidSubscription, sub.LicenseType)
	}
	if !sub.AuditFrequency.Valid() {
		return fmt.Errorf("%w: unknown audit frequency %q", ErrInvalidSubscription, sub.AuditFrequency)
	}
	if sub.OwnerID.String() == "" {
		return fmt.Errorf("%w: empty owner_id", ErrInvalidSubscription)
	}
	if sub.ContractStartDate.IsZero() {
		return fmt.Errorf("%w: empty contract_start_date", ErrInvalidSubscription)
	}
	if sub.NoticePeriodDays < 0 {
		return fmt.Errorf("%w: negative notice period", ErrInvalidSubscription)
	}

	sub.ContractStartDate = DateOnly(sub.ContractStartDate)
	sub.RenewalDate = DateOnly(sub.RenewalDate)
	if sub.RenewalDate.IsZero() {
		sub.RenewalDate = AdvanceCadence(sub.ContractStartDate, sub.Cadence)
	}
	if sub.RenewalDate.Before(sub.ContractStartDate) {
		return fmt.Errorf("%w: renewal_date before contract_start_date", ErrInvalidSubscription)
	}
	return nil
}
