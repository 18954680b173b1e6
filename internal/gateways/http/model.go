package http

import (
	"errors"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"subaudit/internal/entity"
	"subaudit/internal/usecase"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date value")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// subscriptionInput - create/replace payload for a subscription
type subscriptionInput struct {
	ServiceName       string  `json:"service_name" binding:"required"`
	Cost              string  `json:"cost"`
	Cadence           string  `json:"cadence" binding:"required"`
	ContractStartDate string  `json:"contract_start_date" binding:"required"`
	RenewalDate       string  `json:"renewal_date"`
	NoticePeriodDays  int     `json:"notice_period_days"`
	AutoRenewal       bool    `json:"auto_renewal"`
	LicenseType       string  `json:"license_type" binding:"required"`
	SeatsPurchased    int     `json:"seats_purchased"`
	SeatsUtilized     int     `json:"seats_utilized"`
	UsageMetric       string  `json:"usage_metric"`
	UsageLimit        int64   `json:"usage_limit"`
	CurrentUsage      int64   `json:"current_usage"`
	SitesLicensed     int     `json:"sites_licensed"`
	AuditFrequency    string  `json:"audit_frequency"`
	OwnerID           string  `json:"owner_id" binding:"required"`
	DepartmentIDs     []int64 `json:"department_ids"`
}

func (in *subscriptionInput) toEntity() (*entity.Subscription, error) {
	start, err := parseDate(in.ContractStartDate)
	if err != nil {
		return nil, errors.New("invalid contract_start_date")
	}
	var renewal time.Time
	if in.RenewalDate != "" {
		renewal, err = parseDate(in.RenewalDate)
		if err != nil {
			return nil, errors.New("invalid renewal_date")
		}
	}
	cost := decimal.Zero
	if in.Cost != "" {
		cost, err = decimal.NewFromString(in.Cost)
		if err != nil {
			return nil, errors.New("invalid cost")
		}
	}
	freq := entity.AuditFrequency(in.AuditFrequency)
	if in.AuditFrequency == "" {
		freq = entity.AuditNone
	}
	return &entity.Subscription{
		ServiceName:       in.ServiceName,
		Cost:              cost,
		Cadence:           entity.Cadence(in.Cadence),
		ContractStartDate: start,
		RenewalDate:       renewal,
		NoticePeriodDays:  in.NoticePeriodDays,
		AutoRenewal:       in.AutoRenewal,
		LicenseType:       entity.LicenseType(in.LicenseType),
		SeatsPurchased:    in.SeatsPurchased,
		SeatsUtilized:     in.SeatsUtilized,
		UsageMetric:       in.UsageMetric,
		UsageLimit:        in.UsageLimit,
		CurrentUsage:      in.CurrentUsage,
		SitesLicensed:     in.SitesLicensed,
		AuditFrequency:    freq,
		OwnerID:           strfmt.UUID(in.OwnerID),
		DepartmentIDs:     in.DepartmentIDs,
	}, nil
}

// subscriptionPatchInput - partial update payload; absent fields stay unchanged
type subscriptionPatchInput struct {
	ServiceName       *string  `json:"service_name"`
	Cost              *string  `json:"cost"`
	Cadence           *string  `json:"cadence"`
	ContractStartDate *string  `json:"contract_start_date"`
	RenewalDate       *string  `json:"renewal_date"`
	NoticePeriodDays  *int     `json:"notice_period_days"`
	AutoRenewal       *bool    `json:"auto_renewal"`
	LicenseType       *string  `json:"license_type"`
	SeatsPurchased    *int     `json:"seats_purchased"`
	SeatsUtilized     *int     `json:"seats_utilized"`
	UsageMetric       *string  `json:"usage_metric"`
	UsageLimit        *int64   `json:"usage_limit"`
	CurrentUsage      *int64   `json:"current_usage"`
	SitesLicensed     *int     `json:"sites_licensed"`
	AuditFrequency    *string  `json:"audit_frequency"`
	OwnerID           *string  `json:"owner_id"`
	DepartmentIDs     *[]int64 `json:"department_ids"`
}

func (in *subscriptionPatchInput) toPatch() (usecase.SubscriptionPatch, error) {
	var p usecase.SubscriptionPatch
	p.ServiceName = in.ServiceName
	if in.Cost != nil {
		c, err := decimal.NewFromString(*in.Cost)
		if err != nil {
			return p, errors.New("invalid cost")
		}
		p.Cost = &c
	}
	if in.Cadence != nil {
		c := entity.Cadence(*in.Cadence)
		p.Cadence = &c
	}
	if in.ContractStartDate != nil {
		t, err := parseDate(*in.ContractStartDate)
		if err != nil {
			return p, errors.New("invalid contract_start_date")
		}
		p.ContractStartDate = &t
	}
	if in.RenewalDate != nil {
		t, err := parseDate(*in.RenewalDate)
		if err != nil {
			return p, errors.New("invalid renewal_date")
		}
		p.RenewalDate = &t
	}
	p.NoticePeriodDays = in.NoticePeriodDays
	p.AutoRenewal = in.AutoRenewal
	if in.LicenseType != nil {
		l := entity.LicenseType(*in.LicenseType)
		p.LicenseType = &l
	}
	p.SeatsPurchased = in.SeatsPurchased
	p.SeatsUtilized = in.SeatsUtilized
	p.UsageMetric = in.UsageMetric
	p.UsageLimit = in.UsageLimit
	p.CurrentUsage = in.CurrentUsage
	p.SitesLicensed = in.SitesLicensed
	if in.AuditFrequency != nil {
		f := entity.AuditFrequency(*in.AuditFrequency)
		p.AuditFrequency = &f
	}
	if in.OwnerID != nil {
		id := strfmt.UUID(*in.OwnerID)
		p.OwnerID = &id
	}
	p.DepartmentIDs = in.DepartmentIDs
	return p, nil
}

// subscriptionResponse - API representation of a subscription
type subscriptionResponse struct {
	ID                int64   `json:"id"`
	ServiceName       string  `json:"service_name"`
	Cost              string  `json:"cost"`
	Cadence           string  `json:"cadence"`
	ContractStartDate string  `json:"contract_start_date"`
	RenewalDate       string  `json:"renewal_date"`
	NoticePeriodDays  int     `json:"notice_period_days"`
	AutoRenewal       bool    `json:"auto_renewal"`
	LicenseType       string  `json:"license_type"`
	SeatsPurchased    int     `json:"seats_purchased,omitempty"`
	SeatsUtilized     int     `json:"seats_utilized,omitempty"`
	UsageMetric       string  `json:"usage_metric,omitempty"`
	UsageLimit        int64   `json:"usage_limit,omitempty"`
	CurrentUsage      int64   `json:"current_usage,omitempty"`
	SitesLicensed     int     `json:"sites_licensed,omitempty"`
	AuditFrequency    string  `json:"audit_frequency"`
	OwnerID           string  `json:"owner_id"`
	DepartmentIDs     []int64 `json:"department_ids"`
}

func toSubscriptionResponse(s *entity.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:                s.ID,
		ServiceName:       s.ServiceName,
		Cost:              s.Cost.String(),
		Cadence:           string(s.Cadence),
		ContractStartDate: s.ContractStartDate.Format(dateLayout),
		RenewalDate:       s.RenewalDate.Format(dateLayout),
		NoticePeriodDays:  s.NoticePeriodDays,
		AutoRenewal:       s.AutoRenewal,
		LicenseType:       string(s.LicenseType),
		SeatsPurchased:    s.SeatsPurchased,
		SeatsUtilized:     s.SeatsUtilized,
		UsageMetric:       s.UsageMetric,
		UsageLimit:        s.UsageLimit,
		CurrentUsage:      s.CurrentUsage,
		SitesLicensed:     s.SitesLicensed,
		AuditFrequency:    string(s.AuditFrequency),
		OwnerID:           s.OwnerID.String(),
		DepartmentIDs:     s.DepartmentIDs,
	}
}

// historyResponse - API representation of a contract history entry
type historyResponse struct {
	ID                int64  `json:"id"`
	SubscriptionID    int64  `json:"subscription_id"`
	ContractStartDate string `json:"contract_start_date"`
	ContractEndDate   string `json:"contract_end_date"`
	Cost              string `json:"cost"`
	Cadence           string `json:"cadence"`
	NoticePeriodDays  int    `json:"notice_period_days"`
	AutoRenewal       bool   `json:"auto_renewal"`
	Status            string `json:"status"`
	Note              string `json:"note,omitempty"`
	CreatedAt         string `json:"created_at"`
}

func toHistoryResponse(h *entity.ContractHistoryEntry) historyResponse {
	return historyResponse{
		ID:                h.ID,
		SubscriptionID:    h.SubscriptionID,
		ContractStartDate: h.ContractStartDate.Format(dateLayout),
		ContractEndDate:   h.ContractEndDate.Format(dateLayout),
		Cost:              h.Cost.String(),
		Cadence:           string(h.Cadence),
		NoticePeriodDays:  h.NoticePeriodDays,
		AutoRenewal:       h.AutoRenewal,
		Status:            string(h.Status),
		Note:              h.Note,
		CreatedAt:         h.CreatedAt.Format(time.RFC3339),
	}
}

// auditResponse - API representation of an audit
type auditResponse struct {
	ID             int64                  `json:"id"`
	SubscriptionID int64                  `json:"subscription_id"`
	ScheduledDate  string                 `json:"scheduled_date"`
	CompletedDate  string                 `json:"completed_date,omitempty"`
	Frequency      string                 `json:"frequency"`
	Checklist      []entity.ChecklistItem `json:"checklist"`
	Findings       string                 `json:"findings,omitempty"`
	Snapshot       *entity.UsageSnapshot  `json:"snapshot,omitempty"`
}

func toAuditResponse(a *entity.Audit) auditResponse {
	resp := auditResponse{
		ID:             a.ID,
		SubscriptionID: a.SubscriptionID,
		ScheduledDate:  a.ScheduledDate.Format(dateLayout),
		Frequency:      string(a.Frequency),
		Checklist:      a.Checklist,
		Findings:       a.Findings,
		Snapshot:       a.Snapshot,
	}
	if a.CompletedDate != nil {
		resp.CompletedDate = a.CompletedDate.Format(dateLayout)
	}
	return resp
}

// auditCompletionInput - audit completion form
type auditCompletionInput struct {
	CompletedDate string                 `json:"completed_date"`
	Checklist     []entity.ChecklistItem `json:"checklist"`
	Findings      string                 `json:"findings"`
	Snapshot      *entity.UsageSnapshot  `json:"snapshot"`
}

// preferenceInput - notification preference upsert payload
type preferenceInput struct {
	Enabled              bool   `json:"enabled"`
	DaysBefore           *int   `json:"days_before"`
	UtilizationThreshold *int   `json:"utilization_threshold"`
	OverrideEmail        string `json:"override_email"`
}

// preferenceResponse - API representation of a notification preference
type preferenceResponse struct {
	UserID               string `json:"user_id"`
	Type                 string `json:"type"`
	Enabled              bool   `json:"enabled"`
	DaysBefore           *int   `json:"days_before,omitempty"`
	UtilizationThreshold *int   `json:"utilization_threshold,omitempty"`
	OverrideEmail        string `json:"override_email,omitempty"`
}

func toPreferenceResponse(p *entity.NotificationPreference) preferenceResponse {
	return preferenceResponse{
		UserID:               p.UserID.String(),
		Type:                 string(p.Type),
		Enabled:              p.Enabled,
		DaysBefore:           p.DaysBefore,
		UtilizationThreshold: p.UtilizationThreshold,
		OverrideEmail:        p.OverrideEmail,
	}
}
