package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subaudit/internal/entity"
)

func intPtr(n int) *int { return &n }

func TestDaysUntil(t *testing.T) {
	today := date(2025, 6, 1)

	assert.Equal(t, 0, DaysUntil(date(2025, 6, 1), today))
	assert.Equal(t, 7, DaysUntil(date(2025, 6, 8), today))
	assert.Equal(t, -1, DaysUntil(date(2025, 5, 31), today))

	// partial days round up
	target := time.Date(2025, 6, 3, 2, 24, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysUntil(target, today))
}

func TestRenewalRecipients(t *testing.T) {
	admin := &entity.User{ID: "a6705dce-b0a7-4a33-bd61-68b7e1a6b111", Name: "Alice", Email: "alice@corp.example", Role: entity.RoleAdministrator}
	owner := &entity.User{ID: "60601fee-2bf1-4721-ae6f-7636e79a0cba", Name: "Bob", Email: "bob@corp.example", Role: entity.RoleSoftwareOwner}
	otherOwner := &entity.User{ID: "a6705dce-b0a7-4a33-bd61-68b7e1a6b222", Name: "Carol", Email: "carol@corp.example", Role: entity.RoleSoftwareOwner}
	deptHead := &entity.User{ID: "a6705dce-b0a7-4a33-bd61-68b7e1a6b333", Name: "Dave", Email: "dave@corp.example", Role: entity.RoleDepartmentHead, DepartmentIDs: []int64{5}}
	farDeptHead := &entity.User{ID: "a6705dce-b0a7-4a33-bd61-68b7e1a6b444", Name: "Erin", Email: "erin@corp.example", Role: entity.RoleDepartmentHead, DepartmentIDs: []int64{9}}
	users := []*entity.User{admin, owner, otherOwner, deptHead, farDeptHead}

	sub := &entity.Subscription{
		ID:            1,
		ServiceName:   "Figma",
		RenewalDate:   date(2025, 6, 8),
		OwnerID:       owner.ID,
		DepartmentIDs: []int64{5},
	}

	emails := func(rs []Recipient) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Email)
		}
		return out
	}

	t.Run("implicit defaults at seven days out", func(t *testing.T) {
		got := RenewalRecipients(sub, users, nil, date(2025, 6, 1))
		assert.ElementsMatch(t, []string{"alice@corp.example", "bob@corp.example", "dave@corp.example"}, emails(got))
	})

	t.Run("implicit default excludes eight days out", func(t *testing.T) {
		got := RenewalRecipients(sub, users, nil, date(2025, 5, 31))
		assert.Empty(t, got)
	})

	t.Run("disabled preference opts out", func(t *testing.T) {
		prefs := []*entity.NotificationPreference{
			{UserID: admin.ID, Type: entity.NotifyRenewalReminder, Enabled: false},
		}
		got := RenewalRecipients(sub, users, prefs, date(2025, 6, 1))
		assert.NotContains(t, emails(got), "alice@corp.example")
	})

	t.Run("stored preference extends lead time and overrides email", func(t *testing.T) {
		prefs := []*entity.NotificationPreference{
			{UserID: otherOwner.ID, Type: entity.NotifyRenewalReminder, Enabled: true, DaysBefore: intPtr(30), OverrideEmail: "carol-alerts@corp.example"},
		}
		got := RenewalRecipients(sub, users, prefs, date(2025, 5, 15))
		assert.Equal(t, []string{"carol-alerts@corp.example"}, emails(got))
	})

	t.Run("nothing after the renewal date has passed", func(t *testing.T) {
		got := RenewalRecipients(sub, users, nil, date(2025, 6, 9))
		assert.Empty(t, got)
	})
}

func TestAuditRecipients(t *testing.T) {
	admin := &entity.User{ID: "a6705dce-b0a7-4a33-bd61-68b7e1a6b111", Email: "alice@corp.example", Role: entity.RoleAdministrator}
	owner := &entity.User{ID: "60601fee-2bf1-4721-ae6f-7636e79a0cba", Email: "bob@corp.example", Role: entity.RoleSoftwareOwner}
	users := []*entity.User{admin, owner}

	audit := &entity.Audit{ID: 1, SubscriptionID: 1, ScheduledDate: date(2025, 6, 5)}

	t.Run("administrators only", func(t *testing.T) {
		got := AuditRecipients(audit, users, nil, date(2025, 6, 1))
		require.Len(t, got, 1)
		assert.Equal(t, "alice@corp.example", got[0].Email)
	})

	t.Run("shortened lead time excludes", func(t *testing.T) {
		prefs := []*entity.NotificationPreference{
			{UserID: admin.ID, Type: entity.NotifyAuditDue, Enabled: true, DaysBefore: intPtr(1)},
		}
		got := AuditRecipients(audit, users, prefs, date(2025, 6, 1))
		assert.Empty(t, got)
	})

	t.Run("opt out", func(t *testing.T) {
		prefs := []*entity.NotificationPreference{
			{UserID: admin.ID, Type: entity.NotifyAuditDue, Enabled: false},
		}
		got := AuditRecipients(audit, users, prefs, date(2025, 6, 1))
		assert.Empty(t, got)
	})
}

func TestUtilizationRecipients(t *testing.T) {
	admin := &entity.User{ID: "a6705dce-b0a7-4a33-bd61-68b7e1a6b111", Email: "alice@corp.example", Role: entity.RoleAdministrator}
	users := []*entity.User{admin}
	threshold := func(n int) []*entity.NotificationPreference {
		return []*entity.NotificationPreference{
			{UserID: admin.ID, Type: entity.NotifyUtilizationWarning, Enabled: true, UtilizationThreshold: intPtr(n)},
		}
	}

	t.Run("seats at threshold fires", func(t *testing.T) {
		sub := &entity.Subscription{LicenseType: entity.LicenseSeats, SeatsPurchased: 10, SeatsUtilized: 9}
		got := UtilizationRecipients(sub, users, threshold(90))
		require.Len(t, got, 1)
	})

	t.Run("below threshold stays quiet", func(t *testing.T) {
		sub := &entity.Subscription{LicenseType: entity.LicenseSeats, SeatsPurchased: 10, SeatsUtilized: 8}
		assert.Empty(t, UtilizationRecipients(sub, users, threshold(90)))
	})

	t.Run("zero denominator never warns", func(t *testing.T) {
		sub := &entity.Subscription{LicenseType: entity.LicenseSeats, SeatsPurchased: 0, SeatsUtilized: 3}
		assert.Empty(t, UtilizationRecipients(sub, users, threshold(0)))
	})

	t.Run("site licenses have no ratio", func(t *testing.T) {
		sub := &entity.Subscription{LicenseType: entity.LicenseSite, SitesLicensed: 2}
		assert.Empty(t, UtilizationRecipients(sub, users, threshold(0)))
	})

	t.Run("usage limit fires at threshold", func(t *testing.T) {
		sub := &entity.Subscription{LicenseType: entity.LicenseUsage, UsageLimit: 1000, CurrentUsage: 950}
		got := UtilizationRecipients(sub, users, threshold(95))
		require.Len(t, got, 1)
	})

	t.Run("no preference means no warning", func(t *testing.T) {
		sub := &entity.Subscription{LicenseType: entity.LicenseSeats, SeatsPurchased: 10, SeatsUtilized: 10}
		assert.Empty(t, UtilizationRecipients(sub, users, nil))
	})
}

func Test_notifier_Preferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	admin := &entity.User{ID: "a6705dce-b0a7-4a33-bd61-68b7e1a6b111", Role: entity.RoleAdministrator}
	owner := &entity.User{ID: "60601fee-2bf1-4721-ae6f-7636e79a0cba", Role: entity.RoleSoftwareOwner}

	t.Run("err, reading someone else's preferences", func(t *testing.T) {
		n := NewNotifier(NewMockUserRepository(ctrl), NewMockPreferenceRepository(ctrl))
		_, err := n.ListPreferences(context.Background(), owner, admin.ID)
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("ok, administrator reads anyone's", func(t *testing.T) {
		pr := NewMockPreferenceRepository(ctrl)
		pr.EXPECT().ListPrefsByUser(gomock.Any(), owner.ID).Return([]*entity.NotificationPreference{}, nil)

		n := NewNotifier(NewMockUserRepository(ctrl), pr)
		_, err := n.ListPreferences(context.Background(), admin, owner.ID)
		assert.NoError(t, err)
	})

	t.Run("err, invalid threshold", func(t *testing.T) {
		n := NewNotifier(NewMockUserRepository(ctrl), NewMockPreferenceRepository(ctrl))
		_, err := n.UpsertPreference(context.Background(), owner, &entity.NotificationPreference{
			UserID:               owner.ID,
			Type:                 entity.NotifyUtilizationWarning,
			Enabled:              true,
			UtilizationThreshold: intPtr(120),
		})
		assert.ErrorIs(t, err, ErrInvalidPreference)
	})

	t.Run("err, unknown notification type", func(t *testing.T) {
		n := NewNotifier(NewMockUserRepository(ctrl), NewMockPreferenceRepository(ctrl))
		_, err := n.UpsertPreference(context.Background(), owner, &entity.NotificationPreference{
			UserID: owner.ID,
			Type:   "SMOKE_SIGNAL",
		})
		assert.ErrorIs(t, err, ErrInvalidPreference)
	})

	t.Run("err, managing someone else's preference", func(t *testing.T) {
		n := NewNotifier(NewMockUserRepository(ctrl), NewMockPreferenceRepository(ctrl))
		_, err := n.UpsertPreference(context.Background(), owner, &entity.NotificationPreference{
			UserID:  admin.ID,
			Type:    entity.NotifyRenewalReminder,
			Enabled: true,
		})
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("ok, upsert own preference", func(t *testing.T) {
		ur := NewMockUserRepository(ctrl)
		ur.EXPECT().GetUserByID(gomock.Any(), owner.ID).Return(owner, nil)
		pr := NewMockPreferenceRepository(ctrl)
		pr.EXPECT().UpsertPref(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *entity.NotificationPreference) (*entity.NotificationPreference, error) {
				return p, nil
			})

		n := NewNotifier(ur, pr)
		p, err := n.UpsertPreference(context.Background(), owner, &entity.NotificationPreference{
			UserID:     owner.ID,
			Type:       entity.NotifyRenewalReminder,
			Enabled:    true,
			DaysBefore: intPtr(14),
		})
		require.NoError(t, err)
		assert.Equal(t, 14, *p.DaysBefore)
	})
}
