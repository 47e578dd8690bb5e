package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered user of the portal (job seeker, employer or admin)
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	IsApproved   bool      `json:"is_approved" db:"is_approved"`
	CompanyName  string    `json:"company_name,omitempty" db:"company_name"`
	Industry     string    `json:"industry,omitempty" db:"industry"`
	Skills       string    `json:"skills,omitempty" db:"skills"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest represents a request to start OTP-verified registration
type RegisterRequest struct {
	Email       string `json:"email" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Password    string `json:"password" validate:"required"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Skills      string `json:"skills,omitempty"`
}

// LoginRequest represents a request to login with email and password
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}
