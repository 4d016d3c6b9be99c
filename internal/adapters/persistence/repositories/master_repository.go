package repositories

import (
	"context"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MasterRepository handles master data lookups
type MasterRepository struct {
	db *gorm.DB
}

// NewMasterRepository creates a new master data repository
func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// ListDepartments lists active departments
func (r *MasterRepository) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	var departments []*models.Department
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

// GetDepartmentByName gets a department by name
func (r *MasterRepository) GetDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&department).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}
