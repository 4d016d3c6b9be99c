package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/password"

	"gorm.io/gorm"
)

// User profile errors
var (
	ErrWrongPassword = errors.New("current password is incorrect")
)

// UserService handles user profile management
type UserService struct {
	userRepo   repositories.UserRepository
	masterRepo *repositories.MasterRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, masterRepo *repositories.MasterRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		masterRepo: masterRepo,
	}
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Position    string `json:"position,omitempty"`
	Department  string `json:"department,omitempty"`
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// GetProfile returns a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates a user's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.Position != "" {
		user.Position = input.Position
	}
	if input.Department != "" {
		user.Department = input.Department
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Profile updated: %s", user.Email)
	return user.ToResponse(), nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.CurrentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed: %s", user.Email)
	return nil
}

// Archive deactivates a user account without removing the row
func (s *UserService) Archive(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := time.Now()
	user.IsActive = false
	user.ArchivedAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ User archived: %s", user.Email)
	return nil
}

// ListDepartments lists the department master data
func (s *UserService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.masterRepo.ListDepartments(ctx)
}
