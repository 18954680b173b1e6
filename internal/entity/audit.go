package entity

import "time"

// ChecklistItem - a single line of an audit checklist. Required and
// Completed are independent flags.
type ChecklistItem struct {
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	Completed bool   `json:"completed"`
}

// DefaultChecklist returns the checklist a newly scheduled audit starts
// with: every item required, nothing completed.
func DefaultChecklist() []ChecklistItem {
	names := []string{
		"license_count_verified",
		"usage_within_limits",
		"invoices_reconciled",
		"access_review_done",
		"vendor_terms_reviewed",
	}
	items := make([]ChecklistItem, 0, len(names))
	for _, n := range names {
		items = append(items, ChecklistItem{Name: n, Required: true})
	}
	return items
}

// UsageSnapshot - utilization figures captured when an audit is completed
type UsageSnapshot struct {
	SeatsPurchased int   `json:"seats_purchased,omitempty"`
	SeatsUtilized  int   `json:"seats_utilized,omitempty"`
	UsageLimit     int64 `json:"usage_limit,omitempty"`
	CurrentUsage   int64 `json:"current_usage,omitempty"`
}

// Audit - a scheduled compliance audit for a subscription.
// An audit with no CompletedDate is pending; at most one pending audit
// exists per subscription.
type Audit struct {
	ID             int64
	SubscriptionID int64
	// ScheduledDate - when the audit is due (date only)
	ScheduledDate time.Time
	// CompletedDate - set exactly once, on completion
	CompletedDate *time.Time
	// Frequency - the audit cadence that generated this audit
	Frequency AuditFrequency
	Checklist []ChecklistItem
	// Findings - free-text findings recorded on completion
	Findings string
	// Snapshot - utilization captured on completion, if any
	Snapshot *UsageSnapshot
}

// Pending reports whether the audit has not been completed yet
func (a *Audit) Pending() bool {
	return a.CompletedDate == nil
}
