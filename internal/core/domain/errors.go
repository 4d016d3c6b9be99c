package domain

import "errors"

// Role represents a staff account role
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Blood bank domain errors
var (
	ErrInvalidBloodType   = errors.New("invalid blood type")
	ErrInvalidUnitStatus  = errors.New("invalid unit status")
	ErrInvalidTransition  = errors.New("invalid unit status transition")
	ErrUnitExpired        = errors.New("blood unit has expired")
	ErrInsufficientUnits  = errors.New("insufficient blood units available")
	ErrDonorNotEligible   = errors.New("donor is not eligible to donate")
	ErrDeferralActive     = errors.New("donor has an active deferral")
	ErrDoNotContactActive = errors.New("donor is inside a do-not-contact period")
)
