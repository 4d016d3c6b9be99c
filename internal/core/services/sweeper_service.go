package services

import (
	"context"
	"log"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// SweeperService runs the periodic inventory housekeeping jobs:
// discarding units past expiry and releasing lapsed reservation holds.
type SweeperService struct {
	unitRepo *repositories.BloodUnitRepository
	cron     *cron.Cron
}

// NewSweeperService creates a new sweeper service
func NewSweeperService(unitRepo *repositories.BloodUnitRepository) *SweeperService {
	return &SweeperService{
		unitRepo: unitRepo,
		cron:     cron.New(),
	}
}

// Start registers and starts the sweep schedules
func (s *SweeperService) Start() error {
	if _, err := s.cron.AddFunc("@every 1h", s.sweepExpiredUnits); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 15m", s.releaseExpiredReservations); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 Inventory sweeper started")

	// Run once immediately so a restart does not delay the sweep
	go s.sweepExpiredUnits()
	go s.releaseExpiredReservations()

	return nil
}

// Stop stops the schedules and waits for running jobs to finish
func (s *SweeperService) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		log.Println("🛑 Sweeper stop timed out, continuing shutdown")
	}
	log.Println("🛑 Inventory sweeper stopped")
}

func (s *SweeperService) sweepExpiredUnits() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	discarded, err := s.unitRepo.DiscardExpiredUnits(ctx, "system")
	if err != nil {
		log.Printf("❌ Expired unit sweep failed: %v", err)
		return
	}
	if discarded > 0 {
		log.Printf("✅ Discarded %d expired unit(s)", discarded)
	}
}

func (s *SweeperService) releaseExpiredReservations() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	released, err := s.unitRepo.ReleaseExpiredReservations(ctx, "system")
	if err != nil {
		log.Printf("❌ Reservation release sweep failed: %v", err)
		return
	}
	if released > 0 {
		log.Printf("✅ Released %d lapsed reservation hold(s)", released)
	}
}
