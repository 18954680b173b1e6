package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"subaudit/internal/entity"
	"subaudit/internal/usecase"
)

// AccountRepository stores users and their notification preferences
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) GetUserByID(ctx context.Context, id strfmt.UUID) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, name, email, role, department_ids
		FROM users WHERE id = $1`, id.String())
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id=%s: %w", id, err)
	}
	return u, nil
}

func (r *AccountRepository) ListUsers(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, email, role, department_ids
		FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

const prefColumns = `id, user_id::text, type, enabled, days_before, utilization_threshold, override_email`

func (r *AccountRepository) ListPrefsByUser(ctx context.Context, userID strfmt.UUID) ([]*entity.NotificationPreference, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+prefColumns+` FROM notification_preferences WHERE user_id = $1 ORDER BY type`,
		userID.String())
	if err != nil {
		return nil, fmt.Errorf("list prefs by user: %w", err)
	}
	defer rows.Close()
	return collectPrefs(rows)
}

func (r *AccountRepository) ListPrefsByType(ctx context.Context, t entity.NotificationType) ([]*entity.NotificationPreference, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+prefColumns+` FROM notification_preferences WHERE type = $1`,
		string(t))
	if err != nil {
		return nil, fmt.Errorf("list prefs by type: %w", err)
	}
	defer rows.Close()
	return collectPrefs(rows)
}

func (r *AccountRepository) UpsertPref(ctx context.Context, p *entity.NotificationPreference) (*entity.NotificationPreference, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notification_preferences (user_id, type, enabled, days_before, utilization_threshold, override_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, type) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			days_before = EXCLUDED.days_before,
			utilization_threshold = EXCLUDED.utilization_threshold,
			override_email = EXCLUDED.override_email
		RETURNING `+prefColumns,
		p.UserID.String(), string(p.Type), p.Enabled, p.DaysBefore, p.UtilizationThreshold, p.OverrideEmail)
	out, err := scanPref(row)
	if err != nil {
		return nil, fmt.Errorf("upsert pref: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u    entity.User
		id   string
		role string
	)
	if err := row.Scan(&id, &u.Name, &u.Email, &role, &u.DepartmentIDs); err != nil {
		return nil, err
	}
	u.ID = strfmt.UUID(id)
	u.Role = entity.Role(role)
	return &u, nil
}

func scanPref(row rowScanner) (*entity.NotificationPreference, error) {
	var (
		p   entity.NotificationPreference
		uid string
		typ string
	)
	if err := row.Scan(&p.ID, &uid, &typ, &p.Enabled, &p.DaysBefore, &p.UtilizationThreshold, &p.OverrideEmail); err != nil {
		return nil, err
	}
	p.UserID = strfmt.UUID(uid)
	p.Type = entity.NotificationType(typ)
	return &p, nil
}

func collectPrefs(rows pgx.Rows) ([]*entity.NotificationPreference, error) {
	var out []*entity.NotificationPreference
	for rows.Next() {
		p, err := scanPref(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
