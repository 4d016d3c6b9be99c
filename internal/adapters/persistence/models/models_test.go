package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsPendingApproval(t *testing.T) {
	reason := "incomplete details"

	pending := &User{Role: "admin", IsActive: false}
	assert.True(t, pending.IsPendingApproval())

	approved := &User{Role: "admin", IsActive: true}
	assert.False(t, approved.IsPendingApproval())

	rejected := &User{Role: "admin", IsActive: false, RejectionReason: &reason}
	assert.False(t, rejected.IsPendingApproval())

	staff := &User{Role: "user", IsActive: false}
	assert.False(t, staff.IsPendingApproval())
}

func TestUser_ToResponse_OmitsPassword(t *testing.T) {
	user := &User{
		ID:       7,
		Name:     "Jane Staff",
		Email:    "jane@bloodbank.local",
		Password: "hashed",
		Role:     "admin",
	}

	resp := user.ToResponse()
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, user.Role, resp.Role)
}

func TestRefreshToken_IsRevoked(t *testing.T) {
	token := &RefreshToken{}
	assert.False(t, token.IsRevoked())

	now := time.Now()
	token.RevokedAt = &now
	assert.True(t, token.IsRevoked())
}

func TestRefreshToken_IsExpired(t *testing.T) {
	live := &RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, live.IsExpired())

	stale := &RefreshToken{ExpiresAt: time.Now().Add(-time.Hour)}
	assert.True(t, stale.IsExpired())
}

func TestContact_InQuietPeriod(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	contact := &Contact{}
	assert.False(t, contact.InQuietPeriod(now))

	contact.QuietPeriods = []DoNotContactPeriod{
		{
			StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}
	assert.True(t, contact.InQuietPeriod(now))

	// Boundaries are inclusive
	assert.True(t, contact.InQuietPeriod(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, contact.InQuietPeriod(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)))

	assert.False(t, contact.InQuietPeriod(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStorageLog_Temperature(t *testing.T) {
	reading := &StorageLog{Type: StorageLogTemperature, Value: "4.2"}
	v, ok := reading.Temperature()
	assert.True(t, ok)
	assert.InDelta(t, 4.2, v, 0.001)

	maintenance := &StorageLog{Type: StorageLogMaintenance, Value: "completed"}
	_, ok = maintenance.Temperature()
	assert.False(t, ok)

	garbage := &StorageLog{Type: StorageLogTemperature, Value: "warm"}
	_, ok = garbage.Temperature()
	assert.False(t, ok)
}
