package config

import (
	"log"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("⚠️ Super admin seeder skipped: %v", err)
	}
	if err := s.seedDepartments(); err != nil {
		log.Printf("⚠️ Department seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperAdmin creates the initial super admin account. Credentials
// come from the environment; in production change the password on first
// login.
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleSuperAdmin)).Count(&count)
	if count > 0 {
		return nil // Super admin already exists
	}

	email := getEnv("SUPER_ADMIN_EMAIL", "superadmin@bloodbank.local")
	rawPassword := getEnv("SUPER_ADMIN_PASSWORD", "")
	if rawPassword == "" {
		log.Println("⚠️ Skipping super admin seed: SUPER_ADMIN_PASSWORD not set")
		return nil
	}

	hashedPassword, err := password.Hash(rawPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:          "Super Admin",
		Email:         email,
		Password:      hashedPassword,
		Role:          string(domain.RoleSuperAdmin),
		IsActive:      true,
		EmailVerified: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin created: %s", admin.Email)
	return nil
}

// seedDepartments creates the default department list
func (s *Seeder) seedDepartments() error {
	var count int64
	s.db.Model(&models.Department{}).Count(&count)
	if count > 0 {
		return nil // Departments already seeded
	}

	departments := []models.Department{
		{Name: "Blood Collection", Description: "Donor intake and blood collection", IsActive: true},
		{Name: "Blood Processing", Description: "Component separation and testing", IsActive: true},
		{Name: "Inventory Management", Description: "Blood unit storage and stock control", IsActive: true},
		{Name: "Transfusion Services", Description: "Recipient requests and transfusions", IsActive: true},
		{Name: "Quality Assurance", Description: "Storage monitoring and compliance", IsActive: true},
		{Name: "Administration", Description: "General administration", IsActive: true},
	}

	if err := s.db.Create(&departments).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d departments", len(departments))
	return nil
}
