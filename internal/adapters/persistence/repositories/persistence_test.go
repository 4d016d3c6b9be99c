package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named in-memory database per test, shared across pooled connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

// A created admin must land inactive even though most rows are active:
// a column default on is_active would silently override the explicit false.
func TestUserRepository_AdminStartsInactive(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	admin := &models.User{
		Name:     "Pending Admin",
		Email:    "pending.admin@bloodbank.local",
		Password: "hashed",
		Role:     "admin",
		IsActive: false,
	}
	require.NoError(t, repo.Create(ctx, admin))

	stored, err := repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)
	require.True(t, stored.IsPendingApproval())

	pending, total, err := repo.ListAdmins(ctx, "pending", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	require.Equal(t, admin.Email, pending[0].Email)
}

func TestStorageRepository_CriticalReadingStaysUnresolved(t *testing.T) {
	db := testDB(t)
	repo := NewStorageRepository(db)
	ctx := context.Background()

	entry := &models.StorageLog{
		FacilityID:     "main",
		RefrigeratorID: "fridge-1",
		Type:           models.StorageLogTemperature,
		Value:          "8.5",
		Severity:       domain.SeverityCritical,
		Resolved:       false,
		RecordedBy:     "monitor",
	}
	require.NoError(t, repo.Create(ctx, entry))

	stored, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	require.False(t, stored.Resolved)

	open, err := repo.ListUnresolvedAlerts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, open, 1)
}

func TestStorageRepository_OpenMaintenanceAlertVisible(t *testing.T) {
	db := testDB(t)
	repo := NewStorageRepository(db)
	ctx := context.Background()

	alert := &models.StorageLog{
		FacilityID:     "main",
		RefrigeratorID: "fridge-1",
		Type:           models.StorageLogAlert,
		Value:          "maintenance_needed",
		Severity:       domain.SeverityWarning,
		Resolved:       false,
		RecordedBy:     "system",
	}
	require.NoError(t, repo.Create(ctx, alert))

	flagged, err := repo.HasUnresolvedMaintenanceAlert(ctx, "main", "fridge-1")
	require.NoError(t, err)
	require.True(t, flagged)

	counts, err := repo.CountUnresolvedBySeverity(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, counts[domain.SeverityWarning])
}

func TestScheduleRepository_SlotTaken(t *testing.T) {
	db := testDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	booking := &models.DonorSchedule{
		DonorID:       1,
		ScheduledDate: day,
		TimeSlot:      "10:00",
		Status:        models.AppointmentScheduled,
	}
	require.NoError(t, repo.Create(ctx, booking))

	taken, err := repo.SlotTaken(ctx, day, "10:00")
	require.NoError(t, err)
	require.True(t, taken)

	free, err := repo.SlotTaken(ctx, day, "11:00")
	require.NoError(t, err)
	require.False(t, free)

	// A cancelled booking releases its slot
	booking.Status = models.AppointmentCancelled
	require.NoError(t, repo.Update(ctx, booking))

	taken, err = repo.SlotTaken(ctx, day, "10:00")
	require.NoError(t, err)
	require.False(t, taken)
}
