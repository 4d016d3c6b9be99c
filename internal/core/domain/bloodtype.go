package domain

// BloodType represents one of the eight ABO/Rh blood types
type BloodType string

const (
	APositive  BloodType = "A+"
	ANegative  BloodType = "A-"
	BPositive  BloodType = "B+"
	BNegative  BloodType = "B-"
	ABPositive BloodType = "AB+"
	ABNegative BloodType = "AB-"
	OPositive  BloodType = "O+"
	ONegative  BloodType = "O-"
)

// AllBloodTypes lists every known blood type in display order
var AllBloodTypes = []BloodType{
	APositive, ANegative,
	BPositive, BNegative,
	ABPositive, ABNegative,
	OPositive, ONegative,
}

// compatibility maps a recipient blood type to the donor types that can supply it
var compatibility = map[BloodType][]BloodType{
	APositive:  {APositive, ANegative, OPositive, ONegative},
	ANegative:  {ANegative, ONegative},
	BPositive:  {BPositive, BNegative, OPositive, ONegative},
	BNegative:  {BNegative, ONegative},
	ABPositive: {APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative},
	ABNegative: {ANegative, BNegative, ABNegative, ONegative},
	OPositive:  {OPositive, ONegative},
	ONegative:  {ONegative},
}

// IsValidBloodType reports whether s is one of the eight known types
func IsValidBloodType(s string) bool {
	_, ok := compatibility[BloodType(s)]
	return ok
}

// CompatibleDonorTypes returns the donor blood types that can safely be
// transfused into a recipient of the given type. Unknown types yield an
// empty set.
func CompatibleDonorTypes(recipient BloodType) []BloodType {
	donors, ok := compatibility[recipient]
	if !ok {
		return []BloodType{}
	}
	out := make([]BloodType, len(donors))
	copy(out, donors)
	return out
}

// CanReceiveFrom reports whether a recipient of type r can receive blood of type d
func CanReceiveFrom(r, d BloodType) bool {
	for _, t := range compatibility[r] {
		if t == d {
			return true
		}
	}
	return false
}
