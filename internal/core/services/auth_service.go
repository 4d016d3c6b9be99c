package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/jwt"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidAdminCode    = errors.New("invalid admin registration code")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrAccountPending      = errors.New("account is pending approval")
	ErrAccountRejected     = errors.New("account request was rejected")
	ErrEmailNotVerified    = errors.New("email address not verified")
	ErrVerificationPending = errors.New("verification email could not be sent")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	mailer           *MailerService
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	mailer *MailerService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		mailer:           mailer,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	VerifyURL string `json:"verify_url,omitempty"`
}

// RegisterAdminInput represents admin registration input
type RegisterAdminInput struct {
	Name             string `json:"name" validate:"required,min=2,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	Position         string `json:"position,omitempty"`
	Department       string `json:"department,omitempty"`
	RegistrationCode string `json:"registration_code" validate:"required"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register registers a new staff user and sends the verification email.
// If the email cannot be sent the created account is rolled back so the
// address stays free for another attempt.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	rawToken, err := randomToken()
	if err != nil {
		return nil, err
	}
	tokenHash := password.HashToken(rawToken)

	user := &models.User{
		Name:              input.Name,
		Email:             input.Email,
		Password:          hashedPassword,
		Role:              string(domain.RoleUser),
		IsActive:          true,
		VerificationToken: &tokenHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	verifyURL := fmt.Sprintf("%s?token=%s", input.VerifyURL, rawToken)
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, verifyURL); err != nil {
		// Compensating rollback: remove the account so registration
		// can be retried with the same email.
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			log.Printf("❌ Failed to roll back user %d after mail error: %v", user.ID, delErr)
		}
		log.Printf("❌ Verification email failed for %s: %v", user.Email, err)
		return nil, ErrVerificationPending
	}

	log.Printf("✅ User registered: %s", user.Email)
	return user.ToResponse(), nil
}

// RegisterAdmin registers an administrator account. The account starts
// inactive and must be approved by a super admin before it can sign in.
func (s *AuthService) RegisterAdmin(ctx context.Context, input *RegisterAdminInput) (*models.UserResponse, error) {
	if s.cfg.Admin.RegistrationCode == "" || input.RegistrationCode != s.cfg.Admin.RegistrationCode {
		return nil, ErrInvalidAdminCode
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        input.Name,
		Email:       input.Email,
		Password:    hashedPassword,
		Role:        string(domain.RoleAdmin),
		PhoneNumber: input.PhoneNumber,
		Position:    input.Position,
		Department:  input.Department,
		IsActive:    false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Admin registered, pending approval: %s", user.Email)
	return user.ToResponse(), nil
}

// VerifyEmail consumes a verification token and marks the email verified
func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string) error {
	tokenHash := password.HashToken(rawToken)

	user, err := s.userRepo.GetByVerificationToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Email verified: %s", user.Email)
	return nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if user.ArchivedAt != nil {
		return nil, ErrUserInactive
	}
	if !user.IsActive {
		if user.IsPendingApproval() {
			return nil, ErrAccountPending
		}
		if user.RejectionReason != nil {
			return nil, ErrAccountRejected
		}
		return nil, ErrUserInactive
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("❌ Failed to record last login for %s: %v", user.Email, err)
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates the refresh token and issues a new access token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive || user.ArchivedAt != nil {
		return nil, ErrUserInactive
	}

	// Token rotation: the presented refresh token is single-use
	if err := s.refreshTokenRepo.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	if err := s.refreshTokenRepo.Revoke(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ForgotPassword issues a password reset token valid for 10 minutes.
// Callers should always answer the same way whether or not the email
// exists, so account presence is not leaked.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	rawToken, err := randomToken()
	if err != nil {
		return err
	}
	tokenHash := password.HashToken(rawToken)
	expire := time.Now().Add(10 * time.Minute)

	user.ResetPasswordToken = &tokenHash
	user.ResetPasswordExpire = &expire
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s?token=%s", resetURLBase, rawToken)
	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, resetURL); err != nil {
		// Clear the token so a later attempt can start fresh
		user.ResetPasswordToken = nil
		user.ResetPasswordExpire = nil
		if updErr := s.userRepo.Update(ctx, user); updErr != nil {
			log.Printf("❌ Failed to clear reset token for %s: %v", user.Email, updErr)
		}
		return err
	}

	log.Printf("✅ Password reset email sent: %s", user.Email)
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
// All existing sessions are revoked.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	tokenHash := password.HashToken(rawToken)

	user, err := s.userRepo.GetByResetToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if user.ResetPasswordExpire == nil || time.Now().After(*user.ResetPasswordExpire) {
		return ErrTokenExpired
	}

	hashedPassword, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.ResetPasswordToken = nil
	user.ResetPasswordExpire = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
		log.Printf("❌ Failed to revoke sessions for %s: %v", user.Email, err)
	}

	log.Printf("✅ Password reset: %s", user.Email)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	expiresAt := jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays)

	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	return s.refreshTokenRepo.Create(ctx, token)
}

// randomToken returns a 40-char hex token from 20 random bytes
func randomToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
