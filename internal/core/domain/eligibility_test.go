package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckDonationInterval_NoHistory(t *testing.T) {
	result := CheckDonationInterval(nil, date(2024, 3, 1), 56)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
}

func TestCheckDonationInterval_FutureDate(t *testing.T) {
	future := time.Now().AddDate(0, 0, 1)
	result := CheckDonationInterval(nil, future, 56)
	assert.False(t, result.Eligible)
	assert.Equal(t, "Donation date cannot be in the future", result.Reason)
}

func TestCheckDonationInterval_TooSoon(t *testing.T) {
	last := date(2024, 1, 1)
	result := CheckDonationInterval(&last, date(2024, 1, 15), 56)
	assert.False(t, result.Eligible)
	assert.Equal(t, "Donor must wait 56 days between donations", result.Reason)
}

func TestCheckDonationInterval_BoundaryInclusive(t *testing.T) {
	last := date(2024, 1, 1)

	// Day 55 is still too soon
	result := CheckDonationInterval(&last, date(2024, 2, 25), 56)
	assert.False(t, result.Eligible)

	// Day 56 exactly is accepted
	result = CheckDonationInterval(&last, date(2024, 2, 26), 56)
	assert.True(t, result.Eligible)
}

func TestNextEligibleDate(t *testing.T) {
	assert.Nil(t, NextEligibleDate(nil, 56))

	last := date(2024, 1, 1)
	next := NextEligibleDate(&last, 56)
	require.NotNil(t, next)
	assert.Equal(t, date(2024, 2, 26), *next)
}

func TestDeferralBlocks_Permanent(t *testing.T) {
	now := date(2024, 6, 1)
	assert.True(t, DeferralBlocks(DeferralPermanent, date(2020, 1, 1), nil, now))
}

func TestDeferralBlocks_TemporaryWindow(t *testing.T) {
	now := date(2024, 6, 1)
	end := date(2024, 6, 30)

	assert.True(t, DeferralBlocks(DeferralTemporary, date(2024, 5, 1), &end, now))

	past := date(2024, 5, 31)
	assert.False(t, DeferralBlocks(DeferralTemporary, date(2024, 5, 1), &past, now))

	assert.False(t, DeferralBlocks(DeferralTemporary, date(2024, 6, 2), &end, now))
}

func TestExpiryFromCollection(t *testing.T) {
	expiry := ExpiryFromCollection(date(2024, 1, 1), 42)
	assert.Equal(t, date(2024, 2, 12), expiry)
}

func TestUnitExpired(t *testing.T) {
	expiry := date(2024, 2, 12)
	assert.False(t, UnitExpired(expiry, date(2024, 2, 12)))
	assert.True(t, UnitExpired(expiry, date(2024, 2, 13)))
}
