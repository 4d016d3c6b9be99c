package models

import (
	"time"
)

// User represents the users table (staff, admin, super_admin accounts)
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:20;default:'user'" json:"role"`

	// Admin profile fields
	PhoneNumber string `gorm:"size:20" json:"phone_number,omitempty"`
	Position    string `gorm:"size:100" json:"position,omitempty"`
	Department  string `gorm:"size:100" json:"department,omitempty"`

	// Account status. Admin accounts start inactive until a super admin
	// approves them; "deleting" a user archives it instead of removing the row.
	// No gorm default here: a column default would override an explicit
	// false on Create, since GORM omits zero-valued fields that carry one.
	IsActive   bool       `json:"is_active"`
	ArchivedAt *time.Time `gorm:"index" json:"archived_at,omitempty"`

	// Email verification
	EmailVerified     bool    `gorm:"default:false" json:"email_verified"`
	VerificationToken *string `gorm:"size:64;index" json:"-"`

	// Password reset
	ResetPasswordToken  *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`

	// Approval metadata (approve XOR reject, one decision per admin)
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Approver *User `gorm:"foreignKey:ApprovedBy" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsPendingApproval reports whether an admin account still awaits a decision
func (u *User) IsPendingApproval() bool {
	return u.Role == "admin" && !u.IsActive && u.RejectionReason == nil
}

// UserResponse DTO
type UserResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	Position      string     `json:"position,omitempty"`
	Department    string     `json:"department,omitempty"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	ApprovalDate  *time.Time `json:"approval_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		PhoneNumber:   u.PhoneNumber,
		Position:      u.Position,
		Department:    u.Department,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		ApprovalDate:  u.ApprovalDate,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Department represents the departments master table
type Department struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
