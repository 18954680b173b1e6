package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"subaudit/internal/entity"
	"subaudit/internal/usecase"
)

var pgContainer *postgres.PostgresContainer

func cleanup() {
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
}

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(1)
	}()

	c, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("subaudit_db"),
		postgres.WithUsername("subaudit_user"),
		postgres.WithPassword("subaudit_password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "run container: %v\n", err)
		cleanup()
		os.Exit(1)
	}
	pgContainer = c

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "conn string: %v\n", err)
		cleanup()
		os.Exit(1)
	}

	migDir, err := filepath.Abs("../../../../migrations")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "migrations path: %v\n", err)
		cleanup()
		os.Exit(1)
	}
	if err := runMigrations(connStr, "file:///"+migDir); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "migrate up: %v\n", err)
		cleanup()
		os.Exit(1)
	}

	code := m.Run()

	cleanup()
	os.Exit(code)
}

func runMigrations(connStr, srcURL string) error {
	m, err := migrate.New(srcURL, connStr)
	if err != nil {
		return err
	}
	defer func(m *migrate.Migrate) {
		_, _ = m.Close()
	}(m)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = pool.Exec(ctx, `TRUNCATE TABLE subscriptions RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

// seedSubscription inserts the parent row the audits FK requires
func seedSubscription(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO subscriptions (
			service_name, cost, cadence, contract_start_date, renewal_date,
			license_type, audit_frequency, owner_id)
		VALUES ('Jira', 77.50, 'Monthly', '2025-05-01', '2025-06-01', 'Seats', 'Quarterly', $1)
		RETURNING id`, uuid.New().String()).Scan(&id)
	require.NoError(t, err)
	return id
}

func pendingAudit(subID int64, scheduled time.Time) *entity.Audit {
	return &entity.Audit{
		SubscriptionID: subID,
		ScheduledDate:  scheduled,
		Frequency:      entity.AuditQuarterly,
		Checklist:      entity.DefaultChecklist(),
	}
}

func TestAuditRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	ar := NewAuditRepository(pool)
	subID := seedSubscription(t, pool)

	created, err := ar.CreateAudit(ctx, pendingAudit(subID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.True(t, created.Pending())
	assert.Len(t, created.Checklist, 5)

	got, err := ar.GetAuditByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, entity.AuditQuarterly, got.Frequency)
	assert.Nil(t, got.Snapshot)

	_, err = ar.GetAuditByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, usecase.ErrAuditNotFound)
}

func TestAuditRepository_OnePendingPerSubscription(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	ar := NewAuditRepository(pool)
	subID := seedSubscription(t, pool)

	first, err := ar.CreateAudit(ctx, pendingAudit(subID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// schema rejects a second pending audit for the same subscription
	_, err = ar.CreateAudit(ctx, pendingAudit(subID, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))
	require.Error(t, err)

	// once the first is completed a new pending audit is allowed
	done := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	first.CompletedDate = &done
	require.NoError(t, ar.CompleteAudit(ctx, first))
	_, err = ar.CreateAudit(ctx, pendingAudit(subID, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
}

func TestAuditRepository_CompleteAudit(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	ar := NewAuditRepository(pool)
	subID := seedSubscription(t, pool)

	created, err := ar.CreateAudit(ctx, pendingAudit(subID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	done := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	created.CompletedDate = &done
	created.Checklist[0].Completed = true
	created.Findings = "two seats unused"
	created.Snapshot = &entity.UsageSnapshot{SeatsPurchased: 50, SeatsUtilized: 48}
	require.NoError(t, ar.CompleteAudit(ctx, created))

	got, err := ar.GetAuditByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedDate)
	assert.Equal(t, done, *got.CompletedDate)
	assert.True(t, got.Checklist[0].Completed)
	assert.Equal(t, "two seats unused", got.Findings)
	require.NotNil(t, got.Snapshot)
	assert.Equal(t, 48, got.Snapshot.SeatsUtilized)

	// the second writer loses
	later := done.AddDate(0, 0, 1)
	created.CompletedDate = &later
	assert.ErrorIs(t, ar.CompleteAudit(ctx, created), usecase.ErrAuditCompleted)
}

func TestAuditRepository_CountPendingInWindow(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	ar := NewAuditRepository(pool)

	subA := seedSubscription(t, pool)
	subB := seedSubscription(t, pool)
	subC := seedSubscription(t, pool)

	_, err := ar.CreateAudit(ctx, pendingAudit(subA, time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = ar.CreateAudit(ctx, pendingAudit(subB, time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = ar.CreateAudit(ctx, pendingAudit(subC, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	n, err := ar.CountPendingInWindow(ctx, from, to, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// the scheduling subscription's own audits are not counted
	n, err = ar.CountPendingInWindow(ctx, from, to, subA)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAuditRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	ar := NewAuditRepository(pool)
	subID := seedSubscription(t, pool)

	first, err := ar.CreateAudit(ctx, pendingAudit(subID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	done := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	first.CompletedDate = &done
	require.NoError(t, ar.CompleteAudit(ctx, first))

	second, err := ar.CreateAudit(ctx, pendingAudit(subID, time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	all, err := ar.ListBySubscription(ctx, subID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest scheduled first")

	pending, err := ar.ListPendingBySubscription(ctx, subID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	require.NoError(t, ar.DeleteAudit(ctx, second.ID))
	assert.ErrorIs(t, ar.DeleteAudit(ctx, second.ID), usecase.ErrAuditNotFound)

	pending, err = ar.ListPendingBySubscription(ctx, subID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
