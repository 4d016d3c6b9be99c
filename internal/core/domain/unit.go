package domain

import "time"

// Blood unit statuses
const (
	UnitQuarantine = "quarantine"
	UnitAvailable  = "available"
	UnitReserved   = "reserved"
	UnitDiscarded  = "discarded"
	UnitTransfused = "transfused"
)

// unitTransitions lists the permitted status transitions. Discarded and
// transfused are terminal.
var unitTransitions = map[string][]string{
	UnitQuarantine: {UnitAvailable, UnitDiscarded},
	UnitAvailable:  {UnitReserved, UnitDiscarded, UnitTransfused},
	UnitReserved:   {UnitAvailable, UnitTransfused, UnitDiscarded},
}

// IsValidUnitStatus reports whether s is a known unit status
func IsValidUnitStatus(s string) bool {
	switch s {
	case UnitQuarantine, UnitAvailable, UnitReserved, UnitDiscarded, UnitTransfused:
		return true
	}
	return false
}

// CanTransitionUnit reports whether a unit may move from one status to another
func CanTransitionUnit(from, to string) bool {
	for _, s := range unitTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ExpiryFromCollection derives a unit's expiry date from its collection
// date and the configured shelf life in days.
func ExpiryFromCollection(collection time.Time, shelfLifeDays int) time.Time {
	return collection.AddDate(0, 0, shelfLifeDays)
}

// UnitExpired reports whether a unit is past its expiry date. An expired
// unit must be treated as unavailable regardless of its stored status.
func UnitExpired(expiry, now time.Time) bool {
	return now.After(expiry)
}
