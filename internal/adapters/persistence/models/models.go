package models

import (
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all blood bank tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Accounts
		&User{},
		&RefreshToken{},
		&Department{},
		// Donors
		&Donor{},
		&Donation{},
		&DonorHealth{},
		&DonorDeferral{},
		&DonorSchedule{},
		&Contact{},
		&Communication{},
		&DoNotContactPeriod{},
		// Inventory
		&BloodUnit{},
		&UnitStatusChange{},
		&UnitTemperatureLog{},
		// Recipients
		&Recipient{},
		&BloodRequest{},
		&Transfusion{},
		// Storage
		&StorageLog{},
	)
}
