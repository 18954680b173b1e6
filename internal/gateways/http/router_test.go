package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "subaudit/internal/config"
	"subaudit/internal/entity"
	"subaudit/internal/usecase"
)

const (
	adminID = "a6705dce-b0a7-4a33-bd61-68b7e1a6b111"
	ownerID = "60601fee-2bf1-4721-ae6f-7636e79a0cba"
)

// stubStore - in-memory backing for every repository interface the
// handlers touch
type stubStore struct {
	subs    map[int64]*entity.Subscription
	history []*entity.ContractHistoryEntry
	audits  map[int64]*entity.Audit
	users   map[strfmt.UUID]*entity.User
	prefs   []*entity.NotificationPreference

	nextSubID   int64
	nextAuditID int64
}

func newStubStore() *stubStore {
	return &stubStore{
		subs:   map[int64]*entity.Subscription{},
		audits: map[int64]*entity.Audit{},
		users:  map[strfmt.UUID]*entity.User{},
	}
}

func (s *stubStore) SaveSub(_ context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	s.nextSubID++
	cp := *sub
	cp.ID = s.nextSubID
	s.subs[cp.ID] = &cp
	return &cp, nil
}

func (s *stubStore) UpdateSub(_ context.Context, sub *entity.Subscription) error {
	if _, ok := s.subs[sub.ID]; !ok {
		return usecase.ErrSubscriptionNotFound
	}
	cp := *sub
	s.subs[sub.ID] = &cp
	return nil
}

func (s *stubStore) DeleteSub(_ context.Context, id int64) error {
	if _, ok := s.subs[id]; !ok {
		return usecase.ErrSubscriptionNotFound
	}
	delete(s.subs, id)
	return nil
}

func (s *stubStore) GetSubByID(_ context.Context, id int64, scope usecase.Scope) (*entity.Subscription, error) {
	sub, ok := s.subs[id]
	if !ok || !scope.Matches(sub) {
		return nil, usecase.ErrSubscriptionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *stubStore) ListSubs(_ context.Context, scope usecase.Scope, _ usecase.SubFilter) ([]*entity.Subscription, error) {
	out := []*entity.Subscription{}
	for _, sub := range s.subs {
		if scope.Matches(sub) {
			cp := *sub
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) ListDueForRenewal(_ context.Context, today time.Time) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, sub := range s.subs {
		if sub.AutoRenewal && sub.Cadence != entity.CadenceOneTime && !sub.RenewalDate.After(today) {
			cp := *sub
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) RenewContract(_ context.Context, sub *entity.Subscription, h *entity.ContractHistoryEntry) error {
	if _, ok := s.subs[sub.ID]; !ok {
		return usecase.ErrSubscriptionNotFound
	}
	cp := *h
	s.history = append(s.history, &cp)
	stored := *sub
	s.subs[sub.ID] = &stored
	return nil
}

func (s *stubStore) ListHistory(_ context.Context, subID int64) ([]*entity.ContractHistoryEntry, error) {
	var out []*entity.ContractHistoryEntry
	for _, h := range s.history {
		if h.SubscriptionID == subID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *stubStore) RenewalOutlook(_ context.Context, today time.Time) (*usecase.RenewalOutlook, error) {
	o := &usecase.RenewalOutlook{}
	for _, sub := range s.subs {
		if !sub.AutoRenewal || sub.Cadence == entity.CadenceOneTime {
			continue
		}
		d := usecase.DaysUntil(sub.RenewalDate, today)
		switch {
		case d < 0:
			continue
		case d == 0:
			o.DueToday++
		}
		if d <= 7 {
			o.DueThisWeek++
		}
		if d <= 30 {
			o.UpcomingInNext30Days++
		}
		if d > 0 && (o.NextRenewal == nil || sub.RenewalDate.Before(*o.NextRenewal)) {
			rd := sub.RenewalDate
			o.NextRenewal = &rd
		}
	}
	return o, nil
}

func (s *stubStore) CreateAudit(_ context.Context, a *entity.Audit) (*entity.Audit, error) {
	s.nextAuditID++
	cp := *a
	cp.ID = s.nextAuditID
	s.audits[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *stubStore) GetAuditByID(_ context.Context, id int64) (*entity.Audit, error) {
	a, ok := s.audits[id]
	if !ok {
		return nil, usecase.ErrAuditNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *stubStore) ListBySubscription(_ context.Context, subID int64) ([]*entity.Audit, error) {
	out := []*entity.Audit{}
	for _, a := range s.audits {
		if a.SubscriptionID == subID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) ListPendingBySubscription(_ context.Context, subID int64) ([]*entity.Audit, error) {
	var out []*entity.Audit
	for _, a := range s.audits {
		if a.SubscriptionID == subID && a.CompletedDate == nil {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) DeleteAudit(_ context.Context, id int64) error {
	if _, ok := s.audits[id]; !ok {
		return usecase.ErrAuditNotFound
	}
	delete(s.audits, id)
	return nil
}

func (s *stubStore) CountPendingInWindow(_ context.Context, from, to time.Time, excludeSubID int64) (int, error) {
	n := 0
	for _, a := range s.audits {
		if a.SubscriptionID == excludeSubID || a.CompletedDate != nil {
			continue
		}
		if !a.ScheduledDate.Before(from) && a.ScheduledDate.Before(to) {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) CompleteAudit(_ context.Context, a *entity.Audit) error {
	stored, ok := s.audits[a.ID]
	if !ok {
		return usecase.ErrAuditNotFound
	}
	if stored.CompletedDate != nil {
		return usecase.ErrAuditCompleted
	}
	cp := *a
	s.audits[a.ID] = &cp
	return nil
}

func (s *stubStore) GetUserByID(_ context.Context, id strfmt.UUID) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, usecase.ErrUserNotFound
	}
	return u, nil
}

func (s *stubStore) ListUsers(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubStore) ListPrefsByUser(_ context.Context, userID strfmt.UUID) ([]*entity.NotificationPreference, error) {
	var out []*entity.NotificationPreference
	for _, p := range s.prefs {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) ListPrefsByType(_ context.Context, t entity.NotificationType) ([]*entity.NotificationPreference, error) {
	var out []*entity.NotificationPreference
	for _, p := range s.prefs {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) UpsertPref(_ context.Context, p *entity.NotificationPreference) (*entity.NotificationPreference, error) {
	for i, existing := range s.prefs {
		if existing.UserID == p.UserID && existing.Type == p.Type {
			cp := *p
			cp.ID = existing.ID
			s.prefs[i] = &cp
			return &cp, nil
		}
	}
	cp := *p
	cp.ID = int64(len(s.prefs) + 1)
	s.prefs = append(s.prefs, &cp)
	out := cp
	return &out, nil
}

func testRouter(t *testing.T, store *stubStore, now time.Time) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	sched := usecase.NewAuditScheduler(store, log)
	sched.Jitter = func(int) int { return 0 }
	u := UseCases{
		Sub:      usecase.NewSubscription(store, sched, log),
		Renewal:  usecase.NewRenewal(store, log),
		Audits:   sched,
		Notifier: usecase.NewNotifier(store, store),
		Users:    store,
		Now:      func() time.Time { return now },
	}
	c := cfg.Config{
		Env:       "local",
		Scheduler: cfg.SchedulerConfig{RunAt: "02:00", Timezone: "America/Chicago"},
	}
	return SetupGin(c, u, log)
}

func seedStore(t *testing.T) *stubStore {
	t.Helper()
	store := newStubStore()
	store.users[adminID] = &entity.User{ID: adminID, Name: "Alice", Email: "alice@corp.example", Role: entity.RoleAdministrator}
	store.users[ownerID] = &entity.User{ID: ownerID, Name: "Bob", Email: "bob@corp.example", Role: entity.RoleSoftwareOwner}

	_, err := store.SaveSub(context.Background(), &entity.Subscription{
		ServiceName:       "Netflix",
		Cost:              decimal.NewFromInt(499),
		Cadence:           entity.CadenceMonthly,
		ContractStartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		RenewalDate:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AutoRenewal:       true,
		LicenseType:       entity.LicenseSeats,
		SeatsPurchased:    10,
		SeatsUtilized:     7,
		AuditFrequency:    entity.AuditQuarterly,
		OwnerID:           adminID,
	})
	require.NoError(t, err)
	return store
}

func do(r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentity(t *testing.T) {
	r := testRouter(t, seedStore(t), time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	t.Run("ping is public", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ping", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/subscriptions", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/subscriptions", "9d63ed11-7a2f-4b6a-b83a-3bbda5e85ac2", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage header", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/subscriptions", "not-a-uuid", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSubscriptionEndpoints(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	t.Run("scoped get hides a foreign subscription as 404", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		// sub 1 is owned by the administrator, so the software owner cannot see it
		w := do(r, http.MethodGet, "/api/v1/subscriptions/1", ownerID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(r, http.MethodGet, "/api/v1/subscriptions/1", adminID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("scoped list", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodGet, "/api/v1/subscriptions", ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var subs []subscriptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
		assert.Empty(t, subs)
	})

	t.Run("create requires administrator", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		body := gin.H{
			"service_name":        "Figma",
			"cost":                "144.00",
			"cadence":             "Annually",
			"contract_start_date": "2025-06-10",
			"auto_renewal":        true,
			"license_type":        "Seats",
			"seats_purchased":     25,
			"audit_frequency":     "Annually",
			"owner_id":            ownerID,
		}
		w := do(r, http.MethodPost, "/api/v1/subscriptions", ownerID, body)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = do(r, http.MethodPost, "/api/v1/subscriptions", adminID, body)
		require.Equal(t, http.StatusCreated, w.Code)
		var created subscriptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "2026-06-10", created.RenewalDate, "renewal date defaults to one cadence after start")
	})

	t.Run("create rejects bad enum", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodPost, "/api/v1/subscriptions", adminID, gin.H{
			"service_name":        "Figma",
			"cadence":             "Fortnightly",
			"contract_start_date": "2025-06-10",
			"license_type":        "Seats",
			"owner_id":            ownerID,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("garbage id is 422", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodGet, "/api/v1/subscriptions/banana", adminID, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("delete unknown is 404", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodDelete, "/api/v1/subscriptions/99", adminID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRenewalEndpoints(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("manual trigger requires administrator", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodPost, "/api/v1/renewals/run", ownerID, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("manual trigger returns the batch summary", func(t *testing.T) {
		store := seedStore(t)
		r := testRouter(t, store, now)

		w := do(r, http.MethodPost, "/api/v1/renewals/run", adminID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var res renewalRunResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 1, res.TotalProcessed)
		assert.Equal(t, 1, res.RenewedCount)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "2025-07-01", res.Items[0].NewRenewalDate)

		// second trigger on the same day finds nothing due
		w = do(r, http.MethodPost, "/api/v1/renewals/run", adminID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 0, res.TotalProcessed)
		assert.Len(t, store.history, 1)
	})

	t.Run("status reports outlook and scheduler settings", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodGet, "/api/v1/renewals/status", ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var status struct {
			DueToday  int `json:"due_today"`
			Scheduler struct {
				RunAt    string `json:"run_at"`
				Timezone string `json:"timezone"`
			} `json:"scheduler"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, 1, status.DueToday)
		assert.Equal(t, "02:00", status.Scheduler.RunAt)
		assert.Equal(t, "America/Chicago", status.Scheduler.Timezone)
	})

	t.Run("single renew rejects one-time contracts", func(t *testing.T) {
		store := seedStore(t)
		_, err := store.SaveSub(context.Background(), &entity.Subscription{
			ServiceName:       "Sketch",
			Cadence:           entity.CadenceOneTime,
			ContractStartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			RenewalDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			LicenseType:       entity.LicenseSeats,
			OwnerID:           adminID,
		})
		require.NoError(t, err)

		r := testRouter(t, store, now)
		w := do(r, http.MethodPost, "/api/v1/subscriptions/2/renew", adminID, gin.H{"note": "n/a"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAuditEndpoints(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	seedAudit := func(t *testing.T, store *stubStore) {
		_, err := store.CreateAudit(context.Background(), &entity.Audit{
			SubscriptionID: 1,
			ScheduledDate:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			Frequency:      entity.AuditQuarterly,
			Checklist:      entity.DefaultChecklist(),
		})
		require.NoError(t, err)
	}

	t.Run("complete closes the audit and schedules the successor", func(t *testing.T) {
		store := seedStore(t)
		seedAudit(t, store)
		r := testRouter(t, store, now)

		w := do(r, http.MethodPost, "/api/v1/audits/1/complete", adminID, gin.H{
			"completed_date": "2025-06-12",
			"findings":       "three seats unused",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Audit     auditResponse  `json:"audit"`
			NextAudit *auditResponse `json:"next_audit"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "2025-06-12", res.Audit.CompletedDate)
		require.NotNil(t, res.NextAudit)
		assert.Equal(t, "2025-09-12", res.NextAudit.ScheduledDate)

		// completing the same audit again conflicts
		w = do(r, http.MethodPost, "/api/v1/audits/1/complete", adminID, gin.H{
			"completed_date": "2025-06-13",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("complete requires administrator", func(t *testing.T) {
		store := seedStore(t)
		seedAudit(t, store)
		r := testRouter(t, store, now)
		w := do(r, http.MethodPost, "/api/v1/audits/1/complete", ownerID, gin.H{})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown audit is 404", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodPost, "/api/v1/audits/77/complete", adminID, gin.H{})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("audits of a visible subscription", func(t *testing.T) {
		store := seedStore(t)
		seedAudit(t, store)
		r := testRouter(t, store, now)

		w := do(r, http.MethodGet, "/api/v1/subscriptions/1/audits", adminID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var audits []auditResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &audits))
		assert.Len(t, audits, 1)

		w = do(r, http.MethodGet, "/api/v1/subscriptions/1/audits", ownerID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPreferenceEndpoints(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	t.Run("owner manages only their own", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)

		w := do(r, http.MethodPut, "/api/v1/users/"+ownerID+"/preferences/RENEWAL_REMINDER", ownerID, gin.H{
			"enabled":     true,
			"days_before": 14,
		})
		require.Equal(t, http.StatusOK, w.Code)
		var pref preferenceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pref))
		require.NotNil(t, pref.DaysBefore)
		assert.Equal(t, 14, *pref.DaysBefore)

		w = do(r, http.MethodPut, "/api/v1/users/"+adminID+"/preferences/RENEWAL_REMINDER", ownerID, gin.H{
			"enabled": true,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown type is 422", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodPut, "/api/v1/users/"+ownerID+"/preferences/CARRIER_PIGEON", ownerID, gin.H{
			"enabled": true,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("administrator reads anyone's preferences", func(t *testing.T) {
		r := testRouter(t, seedStore(t), now)
		w := do(r, http.MethodGet, "/api/v1/users/"+ownerID+"/preferences", adminID, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(r, http.MethodGet, "/api/v1/users/"+adminID+"/preferences", ownerID, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
