package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// Admin approval errors
var (
	ErrNotAdminAccount  = errors.New("account is not an admin account")
	ErrAlreadyDecided   = errors.New("account approval already decided")
	ErrRejectionReason  = errors.New("rejection reason is required")
	ErrCannotSelfDecide = errors.New("cannot decide on your own account")
)

// AdminService handles the admin account approval workflow
type AdminService struct {
	userRepo repositories.UserRepository
	mailer   *MailerService
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo repositories.UserRepository, mailer *MailerService) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		mailer:   mailer,
	}
}

// ListAdmins lists admin accounts filtered by approval status
func (s *AdminService) ListAdmins(ctx context.Context, status string, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.ListAdmins(ctx, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, total, nil
}

// Approve activates a pending admin account. The decision is terminal:
// an already approved or rejected account cannot be re-decided.
func (s *AdminService) Approve(ctx context.Context, adminID, approverID uint) (*models.UserResponse, error) {
	user, err := s.getPending(ctx, adminID, approverID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.IsActive = true
	user.ApprovedBy = &approverID
	user.ApprovalDate = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Notification is best-effort; the approval stands either way
	if err := s.mailer.SendAdminApprovedEmail(ctx, user.Email, user.Name); err != nil {
		log.Printf("❌ Approval email failed for %s: %v", user.Email, err)
	}

	log.Printf("✅ Admin approved: %s (by user %d)", user.Email, approverID)
	return user.ToResponse(), nil
}

// Reject declines a pending admin account with a reason. The decision
// is terminal.
func (s *AdminService) Reject(ctx context.Context, adminID, approverID uint, reason string) (*models.UserResponse, error) {
	if reason == "" {
		return nil, ErrRejectionReason
	}

	user, err := s.getPending(ctx, adminID, approverID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.IsActive = false
	user.ApprovedBy = &approverID
	user.ApprovalDate = &now
	user.RejectionReason = &reason
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendAdminRejectedEmail(ctx, user.Email, user.Name, reason); err != nil {
		log.Printf("❌ Rejection email failed for %s: %v", user.Email, err)
	}

	log.Printf("✅ Admin rejected: %s (by user %d)", user.Email, approverID)
	return user.ToResponse(), nil
}

func (s *AdminService) getPending(ctx context.Context, adminID, approverID uint) (*models.User, error) {
	if adminID == approverID {
		return nil, ErrCannotSelfDecide
	}

	user, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != string(domain.RoleAdmin) {
		return nil, ErrNotAdminAccount
	}
	if !user.IsPendingApproval() {
		return nil, ErrAlreadyDecided
	}

	return user, nil
}
