package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-openapi/strfmt"

	"subaudit/internal/entity"
)

//go:generate go run github.com/golang/mock/mockgen@v1.6.0 -destination=usecase_mock.go -package=usecase subaudit/internal/usecase SubscriptionRepository,AuditRepository,UserRepository,PreferenceRepository

var (
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrInvalidID            = errors.New("invalid id")
	ErrInvalidPagination    = errors.New("invalid pagination")
	ErrInvalidPreference    = errors.New("invalid preference")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAuditNotFound        = errors.New("audit not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotAllowed           = errors.New("not allowed")
	ErrCannotRenewOneTime   = errors.New("cannot auto-renew one-time payment")
	ErrAuditCompleted       = errors.New("audit already completed")
	ErrAuditNotCompleted    = errors.New("audit not completed")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Clock - injectable "now" so the renewal/audit logic is a pure function
// of today plus stored state. Timers, HTTP handlers, and tests invoke the
// same code paths with their own clocks.
type Clock func() time.Time

// DateOnly truncates a time to midnight in its location; all due-date
// comparisons in this package are date-only.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SubFilter - common filter for subscription list queries
type SubFilter struct {
	// ServiceName - service name to filter by
	ServiceName *string
	// Limit - maximum number of records in the response
	Limit int
	// Offset - result set offset
	Offset int
}

// RenewalOutlook - counts for the renewal status endpoint
type RenewalOutlook struct {
	DueToday             int
	DueThisWeek          int
	UpcomingInNext30Days int
	// NextRenewal - earliest renewal date strictly after today, nil when none
	NextRenewal *time.Time
}

// SubscriptionRepository - subscription rows plus contract history.
// RenewContract must apply the history append and the period shift as one
// atomic unit.
type SubscriptionRepository interface {
	// SaveSub - save a new subscription
	SaveSub(ctx context.Context, s *entity.Subscription) (*entity.Subscription, error)
	// UpdateSub - update subscription data
	UpdateSub(ctx context.Context, s *entity.Subscription) error
	// DeleteSub - delete a subscription with its audits and history
	DeleteSub(ctx context.Context, id int64) error
	// GetSubByID - get a subscription by ID within the given scope
	GetSubByID(ctx context.Context, id int64, scope Scope) (*entity.Subscription, error)
	// ListSubs - list subscriptions within the given scope
	ListSubs(ctx context.Context, scope Scope, f SubFilter) ([]*entity.Subscription, error)
	// ListDueForRenewal - auto-renewing, non-one-time subscriptions with renewalDate <= today
	ListDueForRenewal(ctx context.Context, today time.Time) ([]*entity.Subscription, error)
	// RenewContract - atomically append the history entry and store the shifted period
	RenewContract(ctx context.Context, s *entity.Subscription, h *entity.ContractHistoryEntry) error
	// ListHistory - contract history of a subscription, newest first
	ListHistory(ctx context.Context, subscriptionID int64) ([]*entity.ContractHistoryEntry, error)
	// RenewalOutlook - aggregate due counts for the status endpoint
	RenewalOutlook(ctx context.Context, today time.Time) (*RenewalOutlook, error)
}

// AuditRepository - audit rows
type AuditRepository interface {
	// CreateAudit - create a pending audit
	CreateAudit(ctx context.Context, a *entity.Audit) (*entity.Audit, error)
	// GetAuditByID - get an audit by ID
	GetAuditByID(ctx context.Context, id int64) (*entity.Audit, error)
	// ListBySubscription - all audits of a subscription, newest scheduled first
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]*entity.Audit, error)
	// ListPendingBySubscription - pending audits of a subscription
	ListPendingBySubscription(ctx context.Context, subscriptionID int64) ([]*entity.Audit, error)
	// DeleteAudit - delete an audit by ID
	DeleteAudit(ctx context.Context, id int64) error
	// CountPendingInWindow - pending audits scheduled in [from, to), excluding one subscription
	CountPendingInWindow(ctx context.Context, from, to time.Time, excludeSubscriptionID int64) (int, error)
	// CompleteAudit - persist completion date, checklist state, findings, snapshot
	CompleteAudit(ctx context.Context, a *entity.Audit) error
}

// UserRepository - read access to accounts
type UserRepository interface {
	GetUserByID(ctx context.Context, id strfmt.UUID) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
}

// PreferenceRepository - notification preference rows
type PreferenceRepository interface {
	ListPrefsByUser(ctx context.Context, userID strfmt.UUID) ([]*entity.NotificationPreference, error)
	ListPrefsByType(ctx context.Context, t entity.NotificationType) ([]*entity.NotificationPreference, error)
	// UpsertPref - insert or replace the (user, type) preference
	UpsertPref(ctx context.Context, p *entity.NotificationPreference) (*entity.NotificationPreference, error)
}

// normalizeFilter validates pagination and applies limit defaults
func normalizeFilter(f SubFilter) (SubFilter, error) {
	if f.Offset < 0 {
		return f, ErrInvalidPagination
	}
	limit := f.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	ff := f
	ff.Limit = limit
	return ff, nil
}
