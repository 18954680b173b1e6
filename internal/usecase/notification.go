package usecase

import (
	"context"
	"math"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/samber/lo"

	"subaudit/internal/entity"
)

// DefaultDaysBefore - implicit reminder lead time used when a user is
// eligible by role but has no stored preference record.
const DefaultDaysBefore = 7

// Recipient - a user due a reminder, with the address it should go to
type Recipient struct {
	User *entity.User
	// Email - override address when the preference sets one
	Email string
}

// DaysUntil returns the number of days from today until target, as a
// ceiling of the real-valued difference: 2.1 days away counts as 3.
func DaysUntil(target, today time.Time) int {
	return int(math.Ceil(target.Sub(today).Hours() / 24))
}

// prefFor finds a user's stored preference of the given type, nil if none
func prefFor(prefs []*entity.NotificationPreference, userID strfmt.UUID, t entity.NotificationType) *entity.NotificationPreference {
	p, ok := lo.Find(prefs, func(p *entity.NotificationPreference) bool {
		return p.UserID == userID && p.Type == t
	})
	if !ok {
		return nil
	}
	return p
}

func recipient(u *entity.User, p *entity.NotificationPreference) Recipient {
	email := u.Email
	if p != nil && p.OverrideEmail != "" {
		email = p.OverrideEmail
	}
	return Recipient{User: u, Email: email}
}

// RenewalRecipients computes who is due a renewal reminder today. A user
// qualifies via an enabled RENEWAL_REMINDER preference, or implicitly when
// they are an administrator, the subscription's owner, or a department
// head over one of its departments. Eligible when the renewal is between 0
// and daysBefore days away.
func RenewalRecipients(sub *entity.Subscription, users []*entity.User, prefs []*entity.NotificationPreference, today time.Time) []Recipient {
	du := DaysUntil(DateOnly(sub.RenewalDate), DateOnly(today))
	if du < 0 {
		return nil
	}

	var out []Recipient
	for _, u := range users {
		p := prefFor(prefs, u.ID, entity.NotifyRenewalReminder)
		days := DefaultDaysBefore
		switch {
		case p != nil:
			if !p.Enabled {
				continue
			}
			if p.DaysBefore != nil {
				days = *p.DaysBefore
			}
		case !implicitRenewalDefault(u, sub):
			continue
		}
		if du <= days {
			out = append(out, recipient(u, p))
		}
	}
	return out
}

// implicitRenewalDefault - roles that get renewal reminders without a
// stored preference record
func implicitRenewalDefault(u *entity.User, sub *entity.Subscription) bool {
	switch u.Role {
	case entity.RoleAdministrator:
		return true
	case entity.RoleSoftwareOwner:
		return u.ID == sub.OwnerID
	case entity.RoleDepartmentHead:
		return lo.Some(u.DepartmentIDs, sub.DepartmentIDs)
	}
	return false
}

// AuditRecipients computes who is due an audit reminder today. Only
// administrators receive audit reminders; a stored AUDIT_DUE preference
// adjusts the lead time or opts out, everything else defaults.
func AuditRecipients(a *entity.Audit, users []*entity.User, prefs []*entity.NotificationPreference, today time.Time) []Recipient {
	du := DaysUntil(DateOnly(a.ScheduledDate), DateOnly(today))
	if du < 0 {
		return nil
	}

	var out []Recipient
	for _, u := range users {
		if u.Role != entity.RoleAdministrator {
			continue
		}
		p := prefFor(prefs, u.ID, entity.NotifyAuditDue)
		days := DefaultDaysBefore
		if p != nil {
			if !p.Enabled {
				continue
			}
			if p.DaysBefore != nil {
				days = *p.DaysBefore
			}
		}
		if du <= days {
			out = append(out, recipient(u, p))
		}
	}
	return out
}

// UtilizationRecipients computes who is due a seat/usage warning. Requires
// an enabled preference with a stored threshold; a subscription without a
// utilization denominator never triggers a warning.
func UtilizationRecipients(sub *entity.Subscription, users []*entity.User, prefs []*entity.NotificationPreference) []Recipient {
	pct, ok := sub.UtilizationPercent()
	if !ok {
		return nil
	}

	var out []Recipient
	for _, u := range users {
		p := prefFor(prefs, u.ID, entity.NotifyUtilizationWarning)
		if p == nil || !p.Enabled || p.UtilizationThreshold == nil {
			continue
		}
		if pct >= *p.UtilizationThreshold {
			out = append(out, recipient(u, p))
		}
	}
	return out
}

// Notifier - loads accounts and preferences and applies the eligibility
// rules; the external mailer consumes its output.
type Notifier struct {
	Ur UserRepository
	Pr PreferenceRepository
}

func NewNotifier(ur UserRepository, pr PreferenceRepository) *Notifier {
	return &Notifier{Ur: ur, Pr: pr}
}

// DueRenewalReminders returns renewal reminder recipients for a subscription today
func (n *Notifier) DueRenewalReminders(ctx context.Context, sub *entity.Subscription, today time.Time) ([]Recipient, error) {
	users, err := n.Ur.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := n.Pr.ListPrefsByType(ctx, entity.NotifyRenewalReminder)
	if err != nil {
		return nil, err
	}
	return RenewalRecipients(sub, users, prefs, today), nil
}

// DueAuditReminders returns audit reminder recipients for an audit today
func (n *Notifier) DueAuditReminders(ctx context.Context, a *entity.Audit, today time.Time) ([]Recipient, error) {
	users, err := n.Ur.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := n.Pr.ListPrefsByType(ctx, entity.NotifyAuditDue)
	if err != nil {
		return nil, err
	}
	return AuditRecipients(a, users, prefs, today), nil
}

// DueUtilizationWarnings returns utilization warning recipients for a subscription
func (n *Notifier) DueUtilizationWarnings(ctx context.Context, sub *entity.Subscription) ([]Recipient, error) {
	users, err := n.Ur.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := n.Pr.ListPrefsByType(ctx, entity.NotifyUtilizationWarning)
	if err != nil {
		return nil, err
	}
	return UtilizationRecipients(sub, users, prefs), nil
}

// ListPreferences returns a user's stored preferences; a non-administrator
// may only read their own.
func (n *Notifier) ListPreferences(ctx context.Context, actor *entity.User, userID strfmt.UUID) ([]*entity.NotificationPreference, error) {
	if actor == nil {
		return nil, ErrNotAllowed
	}
	if actor.Role != entity.RoleAdministrator && actor.ID != userID {
		return nil, ErrNotAllowed
	}
	return n.Pr.ListPrefsByUser(ctx, userID)
}

// UpsertPreference stores a preference; a non-administrator may only
// manage their own.
func (n *Notifier) UpsertPreference(ctx context.Context, actor *entity.User, p *entity.NotificationPreference) (*entity.NotificationPreference, error) {
	if actor == nil {
		return nil, ErrNotAllowed
	}
	if actor.Role != entity.RoleAdministrator && actor.ID != p.UserID {
		return nil, ErrNotAllowed
	}
	if !p.Type.Valid() {
		return nil, ErrInvalidPreference
	}
	if p.DaysBefore != nil && *p.DaysBefore < 0 {
		return nil, ErrInvalidPreference
	}
	if p.UtilizationThreshold != nil && (*p.UtilizationThreshold < 0 || *p.UtilizationThreshold > 100) {
		return nil, ErrInvalidPreference
	}
	if _, err := n.Ur.GetUserByID(ctx, p.UserID); err != nil {
		return nil, err
	}
	return n.Pr.UpsertPref(ctx, p)
}
