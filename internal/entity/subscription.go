package entity

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"
)

// Cadence - payment frequency of a subscription, also the unit the
// renewal date is advanced by
type Cadence string

const (
	CadenceMonthly  Cadence = "Monthly"
	CadenceAnnually Cadence = "Annually"
	CadenceOneTime  Cadence = "OneTime"
)

// Valid reports whether the cadence is one of the known values
func (c Cadence) Valid() bool {
	switch c {
	case CadenceMonthly, CadenceAnnually, CadenceOneTime:
		return true
	}
	return false
}

// LicenseType - how the subscription's entitlement is measured
type LicenseType string

const (
	LicenseSeats LicenseType = "Seats"
	LicenseUsage LicenseType = "Usage"
	LicenseSite  LicenseType = "Site"
)

func (l LicenseType) Valid() bool {
	switch l {
	case LicenseSeats, LicenseUsage, LicenseSite:
		return true
	}
	return false
}

// AuditFrequency - cadence of recurring compliance audits for a subscription
type AuditFrequency string

const (
	AuditNone      AuditFrequency = "None"
	AuditMonthly   AuditFrequency = "Monthly"
	AuditQuarterly AuditFrequency = "Quarterly"
	AuditAnnually  AuditFrequency = "Annually"
)

func (f AuditFrequency) Valid() bool {
	switch f {
	case AuditNone, AuditMonthly, AuditQuarterly, AuditAnnually:
		return true
	}
	return false
}

// Subscription - a tracked software subscription/contract
type Subscription struct {
	// ID - subscription identifier
	ID int64
	// ServiceName - name of the subscribed software/service
	ServiceName string
	// Cost - cost per cadence period
	Cost decimal.Decimal
	// Cadence - payment frequency (Monthly/Annually/OneTime)
	Cadence Cadence
	// ContractStartDate - start of the current contract period (date only)
	ContractStartDate time.Time
	// RenewalDate - end of the current contract period; rolls forward when due
	RenewalDate time.Time
	// NoticePeriodDays - cancellation notice period in days
	NoticePeriodDays int
	// AutoRenewal - whether the contract rolls forward automatically
	AutoRenewal bool

	// LicenseType - Seats/Usage/Site, selects which of the fields below apply
	LicenseType    LicenseType
	SeatsPurchased int
	SeatsUtilized  int
	UsageMetric    string
	UsageLimit     int64
	CurrentUsage   int64
	SitesLicensed  int

	// AuditFrequency - None disables recurring audits
	AuditFrequency AuditFrequency

	// OwnerID - user responsible for the subscription
	OwnerID strfmt.UUID
	// DepartmentIDs - departments the subscription is assigned to
	DepartmentIDs []int64
}

// UtilizationPercent returns current utilization of the license as a
// percentage rounded to the nearest integer. ok is false when the license
// type has no utilization ratio or the denominator is zero; such a
// subscription counts as 0% utilized and never trips a warning.
func (s *Subscription) UtilizationPercent() (pct int, ok bool) {
	var used, total int64
	switch s.LicenseType {
	case LicenseSeats:
		used, total = int64(s.SeatsUtilized), int64(s.SeatsPurchased)
	case LicenseUsage:
		used, total = s.CurrentUsage, s.UsageLimit
	default:
		return 0, false
	}
	if total <= 0 {
		return 0, false
	}
	p := decimal.NewFromInt(used).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(p.IntPart()), true
}

// ContractStatus - how a contract period ended
type ContractStatus string

const (
	ContractAutoRenewed ContractStatus = "Auto-Renewed"
	ContractRenewed     ContractStatus = "Renewed"
	ContractExpired     ContractStatus = "Expired"
)

// ContractHistoryEntry - immutable snapshot of a finished contract period.
// Written only by the renewal paths, never updated or deleted.
type ContractHistoryEntry struct {
	ID             int64
	SubscriptionID int64
	// ContractStartDate/ContractEndDate - bounds of the archived period
	ContractStartDate time.Time
	ContractEndDate   time.Time
	Cost              decimal.Decimal
	Cadence           Cadence
	NoticePeriodDays  int
	AutoRenewal       bool
	Status            ContractStatus
	Note              string
	CreatedAt         time.Time
}
