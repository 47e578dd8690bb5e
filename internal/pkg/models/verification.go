package models

import (
	"time"
)

// PendingVerification represents an unconfirmed registration attempt awaiting
// OTP verification. The account profile travels with the code so the account
// can be created only after the email is proven.
type PendingVerification struct {
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Code         string    `json:"code"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"full_name"`
	CompanyName  string    `json:"company_name,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	Skills       string    `json:"skills,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// VerifyRequest represents a request to confirm a registration with an OTP code
type VerifyRequest struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// VerifyResponse is returned once a registration is confirmed
type VerifyResponse struct {
	AccountID string `json:"account_id"`
}

// OTPEmailEvent is published to the mail dispatcher when a code is issued
type OTPEmailEvent struct {
	Email    string    `json:"email"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}
