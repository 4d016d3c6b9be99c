package services

import (
	"context"
	"testing"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Messages: []string{"Invalid blood type", "Invalid date of birth"}}
	assert.Equal(t, "Invalid blood type; Invalid date of birth", err.Error())
}

func TestInsufficientUnitsError_Error(t *testing.T) {
	err := &InsufficientUnitsError{Requested: 5, Available: 2}
	assert.Equal(t, "insufficient units: requested 5, available 2", err.Error())
}

func TestMailer_DisabledWithoutGateway(t *testing.T) {
	mailer := NewMailerService(config.MailConfig{})
	assert.False(t, mailer.IsEnabled())

	// Disabled mailer silently succeeds so callers stay best-effort
	err := mailer.SendDonorReminderEmail(context.Background(), "donor@example.com", "Donor")
	assert.NoError(t, err)
}

func TestMailer_EnabledWithGateway(t *testing.T) {
	mailer := NewMailerService(config.MailConfig{GatewayURL: "https://mail.example.com"})
	assert.True(t, mailer.IsEnabled())
}

func TestWindowDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"":    24 * time.Hour,
		"24h": 24 * time.Hour,
		"7d":  7 * 24 * time.Hour,
		"30d": 30 * 24 * time.Hour,
	}
	for window, want := range cases {
		got, err := windowDuration(window)
		require.NoError(t, err)
		assert.Equal(t, want, got, "window %q", window)
	}

	_, err := windowDuration("1y")
	assert.Error(t, err)
}

func TestInventoryService_CompatibleDonorTypes(t *testing.T) {
	svc := &InventoryService{}

	types, err := svc.CompatibleDonorTypes("AB+")
	require.NoError(t, err)
	assert.Len(t, types, 8) // universal recipient

	types, err = svc.CompatibleDonorTypes("O-")
	require.NoError(t, err)
	assert.Equal(t, []domain.BloodType{domain.ONegative}, types)

	_, err = svc.CompatibleDonorTypes("X+")
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
}

func TestRangeStart(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	current, previous, err := rangeStart("week", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), current)
	assert.Equal(t, now.AddDate(0, 0, -14), previous)

	current, previous, err = rangeStart("month", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, -1, 0), current)
	assert.Equal(t, now.AddDate(0, -2, 0), previous)

	_, _, err = rangeStart("decade", now)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
