package entity

import "github.com/go-openapi/strfmt"

// NotificationType - kinds of reminders a user can opt into
type NotificationType string

const (
	NotifyRenewalReminder    NotificationType = "RENEWAL_REMINDER"
	NotifyAuditDue           NotificationType = "AUDIT_DUE"
	NotifyUtilizationWarning NotificationType = "UTILIZATION_WARNING"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifyRenewalReminder, NotifyAuditDue, NotifyUtilizationWarning:
		return true
	}
	return false
}

// NotificationPreference - per-user, per-type reminder settings.
// Absence of a record means disabled, except where the system applies an
// implicit default (see usecase.DefaultDaysBefore).
type NotificationPreference struct {
	ID     int64
	UserID strfmt.UUID
	Type   NotificationType
	// Enabled - master switch for the type
	Enabled bool
	// DaysBefore - lead time for date-driven reminders
	DaysBefore *int
	// UtilizationThreshold - percentage that arms a utilization warning
	UtilizationThreshold *int
	// OverrideEmail - delivery address overriding the user's own
	OverrideEmail string
}
