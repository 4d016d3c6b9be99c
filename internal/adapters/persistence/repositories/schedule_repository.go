package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
)

// ScheduleRepository handles donation appointment persistence
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.DonorSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uint) (*models.DonorSchedule, error) {
	var schedule models.DonorSchedule
	err := r.db.WithContext(ctx).
		Preload("Donor").
		First(&schedule, id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListBetween lists appointments with a scheduled date inside [from, to],
// soonest first, with the donor preloaded for the calendar view.
func (r *ScheduleRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.DonorSchedule, error) {
	var schedules []*models.DonorSchedule
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("scheduled_date >= ? AND scheduled_date <= ?", from, to).
		Order("scheduled_date ASC, time_slot ASC").
		Find(&schedules).Error
	return schedules, err
}

// SlotTaken reports whether a live booking already holds the date+slot.
// Cancelled and no-show appointments release their slot.
func (r *ScheduleRepository) SlotTaken(ctx context.Context, date time.Time, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DonorSchedule{}).
		Where("scheduled_date = ? AND time_slot = ?", date, slot).
		Where("status IN ?", []string{models.AppointmentScheduled, models.AppointmentCompleted}).
		Count(&count).Error
	return count > 0, err
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.DonorSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}
