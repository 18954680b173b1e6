package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"subaudit/internal/entity"
	"subaudit/internal/usecase"
)

// AuditRepository stores audits in postgres. Checklist and usage snapshot
// are JSONB columns.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditColumns = `id, subscription_id, scheduled_date, completed_date, frequency, checklist, findings, snapshot`

func (r *AuditRepository) CreateAudit(ctx context.Context, a *entity.Audit) (*entity.Audit, error) {
	checklist, err := json.Marshal(a.Checklist)
	if err != nil {
		return nil, fmt.Errorf("create audit: marshal checklist: %w", err)
	}
	snapshot, err := marshalSnapshot(a.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("create audit: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO audits (subscription_id, scheduled_date, completed_date, frequency, checklist, findings, snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+auditColumns,
		a.SubscriptionID, a.ScheduledDate, a.CompletedDate, string(a.Frequency), checklist, a.Findings, snapshot)
	out, err := scanAudit(row)
	if err != nil {
		return nil, fmt.Errorf("create audit: %w", err)
	}
	return out, nil
}

func (r *AuditRepository) GetAuditByID(ctx context.Context, id int64) (*entity.Audit, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+auditColumns+` FROM audits WHERE id = $1`, id)
	a, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrAuditNotFound
		}
		return nil, fmt.Errorf("get audit by id=%d: %w", id, err)
	}
	return a, nil
}

func (r *AuditRepository) ListBySubscription(ctx context.Context, subscriptionID int64) ([]*entity.Audit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+` FROM audits
		WHERE subscription_id = $1
		ORDER BY scheduled_date DESC, id DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()
	return collectAudits(rows)
}

func (r *AuditRepository) ListPendingBySubscription(ctx context.Context, subscriptionID int64) ([]*entity.Audit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+auditColumns+` FROM audits
		WHERE subscription_id = $1 AND completed_date IS NULL
		ORDER BY scheduled_date, id`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list pending audits: %w", err)
	}
	defer rows.Close()
	return collectAudits(rows)
}

func (r *AuditRepository) DeleteAudit(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrAuditNotFound
	}
	return nil
}

func (r *AuditRepository) CountPendingInWindow(ctx context.Context, from, to time.Time, excludeSubscriptionID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM audits
		WHERE completed_date IS NULL
		  AND scheduled_date >= $1 AND scheduled_date < $2
		  AND subscription_id <> $3`,
		from, to, excludeSubscriptionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending in window: %w", err)
	}
	return n, nil
}

// CompleteAudit sets the completion fields of a still-pending audit. The
// completed_date IS NULL guard makes completion first-writer-wins under
// concurrent submissions.
func (r *AuditRepository) CompleteAudit(ctx context.Context, a *entity.Audit) error {
	checklist, err := json.Marshal(a.Checklist)
	if err != nil {
		return fmt.Errorf("complete audit: marshal checklist: %w", err)
	}
	snapshot, err := marshalSnapshot(a.Snapshot)
	if err != nil {
		return fmt.Errorf("complete audit: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE audits SET completed_date = $2, checklist = $3, findings = $4, snapshot = $5
		WHERE id = $1 AND completed_date IS NULL`,
		a.ID, a.CompletedDate, checklist, a.Findings, snapshot)
	if err != nil {
		return fmt.Errorf("complete audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrAuditCompleted
	}
	return nil
}

func marshalSnapshot(s *entity.UsageSnapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return b, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (*entity.Audit, error) {
	var (
		a         entity.Audit
		freq      string
		checklist []byte
		snapshot  []byte
	)
	err := row.Scan(&a.ID, &a.SubscriptionID, &a.ScheduledDate, &a.CompletedDate, &freq, &checklist, &a.Findings, &snapshot)
	if err != nil {
		return nil, err
	}
	a.Frequency = entity.AuditFrequency(freq)
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &a.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}
	if len(snapshot) > 0 {
		var s entity.UsageSnapshot
		if err := json.Unmarshal(snapshot, &s); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		a.Snapshot = &s
	}
	return &a, nil
}

func collectAudits(rows pgx.Rows) ([]*entity.Audit, error) {
	var out []*entity.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
