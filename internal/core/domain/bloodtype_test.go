package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibleDonorTypes_UniversalDonor(t *testing.T) {
	assert.Equal(t, []BloodType{ONegative}, CompatibleDonorTypes(ONegative))
}

func TestCompatibleDonorTypes_UniversalRecipient(t *testing.T) {
	donors := CompatibleDonorTypes(ABPositive)
	assert.Len(t, donors, 8)
	for _, bt := range AllBloodTypes {
		assert.Contains(t, donors, bt)
	}
}

func TestCompatibleDonorTypes_SelfCompatible(t *testing.T) {
	for _, bt := range AllBloodTypes {
		assert.Contains(t, CompatibleDonorTypes(bt), bt, "type %s must be compatible with itself", bt)
	}
}

func TestCompatibleDonorTypes_UnknownType(t *testing.T) {
	assert.Empty(t, CompatibleDonorTypes("C+"))
	assert.Empty(t, CompatibleDonorTypes(""))
}

func TestCanReceiveFrom(t *testing.T) {
	assert.True(t, CanReceiveFrom(APositive, ONegative))
	assert.False(t, CanReceiveFrom(ONegative, OPositive))
	assert.False(t, CanReceiveFrom(ANegative, APositive))
}

func TestIsValidBloodType(t *testing.T) {
	for _, bt := range AllBloodTypes {
		assert.True(t, IsValidBloodType(string(bt)))
	}
	assert.False(t, IsValidBloodType("AB"))
	assert.False(t, IsValidBloodType("o-"))
}
