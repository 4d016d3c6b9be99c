package domain

import (
	"fmt"
	"time"
)

// Eligibility is the outcome of a donor eligibility check
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// daysBetween returns the gap between two instants in whole days
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// CheckDonationInterval checks whether a candidate donation date respects
// the minimum interval since the donor's last donation. A donor with no
// donation history is always eligible. The interval check is inclusive:
// a gap of exactly intervalDays is accepted.
func CheckDonationInterval(lastDonation *time.Time, candidate time.Time, intervalDays int) Eligibility {
	if candidate.After(time.Now()) {
		return Eligibility{Eligible: false, Reason: "Donation date cannot be in the future"}
	}

	if lastDonation == nil {
		return Eligibility{Eligible: true}
	}

	if daysBetween(*lastDonation, candidate) < intervalDays {
		return Eligibility{
			Eligible: false,
			Reason:   fmt.Sprintf("Donor must wait %d days between donations", intervalDays),
		}
	}

	return Eligibility{Eligible: true}
}

// NextEligibleDate returns the earliest date the donor may donate again,
// or nil when the donor has never donated.
func NextEligibleDate(lastDonation *time.Time, intervalDays int) *time.Time {
	if lastDonation == nil {
		return nil
	}
	next := lastDonation.AddDate(0, 0, intervalDays)
	return &next
}

// DeferralBlocks reports whether a deferral window blocks donation at the
// given instant. Permanent deferrals always block; temporary deferrals
// block while start <= now <= end.
func DeferralBlocks(deferralType string, startDate time.Time, endDate *time.Time, now time.Time) bool {
	if deferralType == DeferralPermanent {
		return true
	}
	if endDate == nil {
		return false
	}
	return !startDate.After(now) && !endDate.Before(now)
}

// Deferral types
const (
	DeferralTemporary = "temporary"
	DeferralPermanent = "permanent"
)
