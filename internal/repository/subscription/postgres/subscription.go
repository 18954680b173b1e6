package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"subaudit/internal/entity"
	"subaudit/internal/usecase"
)

// SubRepository stores subscriptions and their contract history in
// postgres. Renewal applies the history append and the period shift in
// one transaction.
type SubRepository struct {
	pool *pgxpool.Pool
}

func NewSubRepository(pool *pgxpool.Pool) *SubRepository {
	return &SubRepository{pool: pool}
}

const subColumns = `id, service_name, cost::text, cadence, contract_start_date, renewal_date,
	notice_period_days, auto_renewal, license_type, seats_purchased, seats_utilized,
	usage_metric, usage_limit, current_usage, sites_licensed, audit_frequency,
	owner_id::text, department_ids`

func (r *SubRepository) SaveSub(ctx context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	if sub == nil {
		return nil, fmt.Errorf("save sub: %w", usecase.ErrInvalidSubscription)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscriptions (
			service_name, cost, cadence, contract_start_date, renewal_date,
			notice_period_days, auto_renewal, license_type, seats_purchased, seats_utilized,
			usage_metric, usage_limit, current_usage, sites_licensed, audit_frequency,
			owner_id, department_ids)
		VALUES ($1, $2::numeric, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+subColumns,
		sub.ServiceName, sub.Cost.String(), string(sub.Cadence), sub.ContractStartDate, sub.RenewalDate,
		sub.NoticePeriodDays, sub.AutoRenewal, string(sub.LicenseType), sub.SeatsPurchased, sub.SeatsUtilized,
		sub.UsageMetric, sub.UsageLimit, sub.CurrentUsage, sub.SitesLicensed, string(sub.AuditFrequency),
		sub.OwnerID.String(), sub.DepartmentIDs)
	out, err := scanSub(row)
	if err != nil {
		return nil, fmt.Errorf("save sub: %w", err)
	}
	return out, nil
}

func (r *SubRepository) UpdateSub(ctx context.Context, sub *entity.Subscription) error {
	if sub == nil {
		return fmt.Errorf("update sub: %w", usecase.ErrInvalidSubscription)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE subscriptions SET
			service_name = $2, cost = $3::numeric, cadence = $4,
			contract_start_date = $5, renewal_date = $6, notice_period_days = $7,
			auto_renewal = $8, license_type = $9, seats_purchased = $10,
			seats_utilized = $11, usage_metric = $12, usage_limit = $13,
			current_usage = $14, sites_licensed = $15, audit_frequency = $16,
			owner_id = $17, department_ids = $18
		WHERE id = $1`,
		sub.ID, sub.ServiceName, sub.Cost.String(), string(sub.Cadence),
		sub.ContractStartDate, sub.RenewalDate, sub.NoticePeriodDays,
		sub.AutoRenewal, string(sub.LicenseType), sub.SeatsPurchased,
		sub.SeatsUtilized, sub.UsageMetric, sub.UsageLimit,
		sub.CurrentUsage, sub.SitesLicensed, string(sub.AuditFrequency),
		sub.OwnerID.String(), sub.DepartmentIDs)
	if err != nil {
		return fmt.Errorf("update sub: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubRepository) DeleteSub(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sub: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubRepository) GetSubByID(ctx context.Context, id int64, scope usecase.Scope) (*entity.Subscription, error) {
	cond, args := scopeCondition(scope, 2)
	row := r.pool.QueryRow(ctx,
		`SELECT `+subColumns+` FROM subscriptions WHERE id = $1 AND `+cond,
		append([]any{id}, args...)...)
	sub, err := scanSub(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// out-of-scope and nonexistent are indistinguishable on purpose
			return nil, usecase.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get sub by id=%d: %w", id, err)
	}
	return sub, nil
}

func (r *SubRepository) ListSubs(ctx context.Context, scope usecase.Scope, f usecase.SubFilter) ([]*entity.Subscription, error) {
	cond, args := scopeCondition(scope, 1)
	q := `SELECT ` + subColumns + ` FROM subscriptions WHERE ` + cond
	n := len(args) + 1
	if f.ServiceName != nil {
		q += fmt.Sprintf(" AND service_name = $%d", n)
		args = append(args, *f.ServiceName)
		n++
	}
	q += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", n, n+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list subs: %w", err)
	}
	defer rows.Close()
	return collectSubs(rows)
}

func (r *SubRepository) ListDueForRenewal(ctx context.Context, today time.Time) ([]*entity.Subscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+subColumns+` FROM subscriptions
		WHERE auto_renewal AND cadence <> 'OneTime' AND renewal_date <= $1
		ORDER BY renewal_date, id`, today)
	if err != nil {
		return nil, fmt.Errorf("list due for renewal: %w", err)
	}
	defer rows.Close()
	return collectSubs(rows)
}

// RenewContract archives the finished period and stores the shifted one
// atomically: a crash can't leave the history written without the shift,
// or the other way round.
func (r *SubRepository) RenewContract(ctx context.Context, sub *entity.Subscription, h *entity.ContractHistoryEntry) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("renew contract: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO contract_history (
			subscription_id, contract_start_date, contract_end_date, cost, cadence,
			notice_period_days, auto_renewal, status, note)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)`,
		h.SubscriptionID, h.ContractStartDate, h.ContractEndDate, h.Cost.String(), string(h.Cadence),
		h.NoticePeriodDays, h.AutoRenewal, string(h.Status), h.Note)
	if err != nil {
		return fmt.Errorf("renew contract: append history: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE subscriptions SET contract_start_date = $2, renewal_date = $3
		WHERE id = $1`,
		sub.ID, sub.ContractStartDate, sub.RenewalDate)
	if err != nil {
		return fmt.Errorf("renew contract: shift period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrSubscriptionNotFound
	}
	return tx.Commit(ctx)
}

func (r *SubRepository) ListHistory(ctx context.Context, subscriptionID int64) ([]*entity.ContractHistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, subscription_id, contract_start_date, contract_end_date, cost::text,
			cadence, notice_period_days, auto_renewal, status, note, created_at
		FROM contract_history WHERE subscription_id = $1
		ORDER BY contract_end_date DESC, id DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []*entity.ContractHistoryEntry
	for rows.Next() {
		var (
			h       entity.ContractHistoryEntry
			cost    string
			cadence string
			status  string
		)
		if err := rows.Scan(&h.ID, &h.SubscriptionID, &h.ContractStartDate, &h.ContractEndDate, &cost,
			&cadence, &h.NoticePeriodDays, &h.AutoRenewal, &status, &h.Note, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("list history: %w", err)
		}
		h.Cost, err = decimal.NewFromString(cost)
		if err != nil {
			return nil, fmt.Errorf("list history: parse cost: %w", err)
		}
		h.Cadence = entity.Cadence(cadence)
		h.Status = entity.ContractStatus(status)
		out = append(out, &h)
	}
	return out, rows.Err()
}

func (r *SubRepository) RenewalOutlook(ctx context.Context, today time.Time) (*usecase.RenewalOutlook, error) {
	var o usecase.RenewalOutlook
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE renewal_date <= $1),
			COUNT(*) FILTER (WHERE renewal_date <= $1 + INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE renewal_date <= $1 + INTERVAL '30 days'),
			MIN(renewal_date) FILTER (WHERE renewal_date > $1)
		FROM subscriptions
		WHERE auto_renewal AND cadence <> 'OneTime'`, today).
		Scan(&o.DueToday, &o.DueThisWeek, &o.UpcomingInNext30Days, &o.NextRenewal)
	if err != nil {
		return nil, fmt.Errorf("renewal outlook: %w", err)
	}
	return &o, nil
}

// scopeCondition renders a usecase.Scope as a WHERE fragment with
// placeholders starting at argn.
func scopeCondition(scope usecase.Scope, argn int) (string, []any) {
	switch scope.Kind {
	case usecase.ScopeAll:
		return "TRUE", nil
	case usecase.ScopeOwner:
		return fmt.Sprintf("owner_id = $%d", argn), []any{scope.OwnerID.String()}
	case usecase.ScopeDepartments:
		return fmt.Sprintf("department_ids && $%d", argn), []any{scope.DepartmentIDs}
	}
	return "FALSE", nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSub(row rowScanner) (*entity.Subscription, error) {
	var (
		s       entity.Subscription
		cost    string
		cadence string
		license string
		freq    string
		owner   string
		deptArr []int64
	)
	err := row.Scan(&s.ID, &s.ServiceName, &cost, &cadence, &s.ContractStartDate, &s.RenewalDate,
		&s.NoticePeriodDays, &s.AutoRenewal, &license, &s.SeatsPurchased, &s.SeatsUtilized,
		&s.UsageMetric, &s.UsageLimit, &s.CurrentUsage, &s.SitesLicensed, &freq,
		&owner, &deptArr)
	if err != nil {
		return nil, err
	}
	s.Cost, err = decimal.NewFromString(cost)
	if err != nil {
		return nil, fmt.Errorf("parse cost: %w", err)
	}
	s.Cadence = entity.Cadence(cadence)
	s.LicenseType = entity.LicenseType(license)
	s.AuditFrequency = entity.AuditFrequency(freq)
	s.OwnerID = strfmt.UUID(owner)
	s.DepartmentIDs = deptArr
	return &s, nil
}

func collectSubs(rows pgx.Rows) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for rows.Next() {
		s, err := scanSub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
