package errors

import "errors"

var (
	ErrDuplicateRegistration = errors.New("an account with this email already exists")
	ErrCodeNotFound          = errors.New("verification code not found")
	ErrCodeExpired           = errors.New("verification code has expired")
	ErrCodeMismatch          = errors.New("verification code does not match")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountNotApproved    = errors.New("account is awaiting admin approval")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidRole           = errors.New("invalid role")
)
