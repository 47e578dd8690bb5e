package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kerjalink/kerjalink/internal/pkg/constants"
	jwtpkg "github.com/kerjalink/kerjalink/internal/pkg/jwt"
	"github.com/kerjalink/kerjalink/internal/pkg/logger"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	"github.com/kerjalink/kerjalink/internal/utils"
	domainErrors "github.com/kerjalink/kerjalink/services/identity/errors"
)

// dummyPasswordHash is compared against on the unknown-email login path so
// lookups and failed logins take the same bcrypt time.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func (u *IdentityUC) otpTTL() time.Duration {
	return time.Duration(u.cfg.OTP.TTLSeconds) * time.Second
}

// StartRegistration issues a verification code for a pending registration and
// dispatches it out-of-band. The account itself is not created until the code
// is verified.
func (u *IdentityUC) StartRegistration(ctx context.Context, req *models.RegisterRequest) error {
	email := utils.NormalizeEmail(req.Email)

	if req.Role != constants.RoleJobseeker && req.Role != constants.RoleEmployer {
		return domainErrors.ErrInvalidRole
	}

	// A confirmed account already owning this email blocks re-registration
	_, err := u.accountRepo.GetAccountByEmail(ctx, email)
	if err == nil {
		return domainErrors.ErrDuplicateRegistration
	}
	if !errors.Is(err, domainErrors.ErrAccountNotFound) {
		return fmt.Errorf("failed to check existing account: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := utils.GenerateNumericCode(u.cfg.OTP.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	pending := &models.PendingVerification{
		Email:        email,
		Role:         req.Role,
		Code:         code,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		CompanyName:  req.CompanyName,
		Industry:     req.Industry,
		Skills:       req.Skills,
		CreatedAt:    time.Now(),
	}

	// Keyed by (email, role): this write supersedes any unexpired prior code
	if err := u.verificationRepo.StorePending(ctx, pending); err != nil {
		return fmt.Errorf("failed to store pending verification: %w", err)
	}

	if err := u.mailGW.SendOTPEmail(ctx, email, code); err != nil {
		return fmt.Errorf("failed to dispatch verification code: %w", err)
	}

	logger.Info("Issued verification code",
		logger.String("email", email),
		logger.String("role", req.Role),
		logger.Duration("ttl", u.otpTTL()))

	return nil
}

// VerifyRegistration consumes a submitted code and finalizes the pending
// account. Exactly one concurrent submission of a valid code can win; losers
// see ErrCodeNotFound.
func (u *IdentityUC) VerifyRegistration(ctx context.Context, req *models.VerifyRequest) (uuid.UUID, error) {
	email := utils.NormalizeEmail(req.Email)

	pending, err := u.verificationRepo.GetPending(ctx, email, req.Role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCodeNotFound) {
			return uuid.Nil, domainErrors.ErrCodeNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load pending verification: %w", err)
	}

	// The ledger's TTL reaper may lag logical expiry, so the age is checked
	// explicitly rather than trusting presence of the record
	if time.Since(pending.CreatedAt) > u.otpTTL() {
		if _, err := u.verificationRepo.DeletePending(ctx, email, req.Role); err != nil {
			logger.Warn("Failed to purge expired verification",
				logger.String("email", email),
				logger.Err(err))
		}
		return uuid.Nil, domainErrors.ErrCodeExpired
	}

	if pending.Code != req.Code {
		return uuid.Nil, domainErrors.ErrCodeMismatch
	}

	// Consume the code. Zero deletions means another submission won the race.
	consumed, err := u.verificationRepo.DeletePending(ctx, email, req.Role)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to consume verification code: %w", err)
	}
	if !consumed {
		return uuid.Nil, domainErrors.ErrCodeNotFound
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: pending.PasswordHash,
		FullName:     pending.FullName,
		Role:         pending.Role,
		// Employers start unapproved and cannot log in until an admin
		// approves them; other roles are usable immediately
		IsApproved:  pending.Role != constants.RoleEmployer,
		CompanyName: pending.CompanyName,
		Industry:    pending.Industry,
		Skills:      pending.Skills,
	}

	if err := u.accountRepo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, domainErrors.ErrDuplicateRegistration) {
			return uuid.Nil, domainErrors.ErrDuplicateRegistration
		}
		return uuid.Nil, fmt.Errorf("failed to create account: %w", err)
	}

	if account.Role == constants.RoleEmployer {
		notification := &models.Notification{
			Kind:      constants.NotificationEmployerPending,
			AccountID: account.ID,
			Message:   fmt.Sprintf("Employer %s is awaiting approval", account.Email),
		}
		// The account exists either way; the feed entry is advisory
		if err := u.notificationRepo.CreateNotification(ctx, notification); err != nil {
			logger.Error("Failed to record pending-approval notification",
				logger.String("account_id", account.ID.String()),
				logger.Err(err))
		}
	}

	logger.Info("Registration verified",
		logger.String("account_id", account.ID.String()),
		logger.String("role", account.Role))

	return account.ID, nil
}

// Login validates credentials and mints a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (u *IdentityUC) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	account, err := u.accountRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAccountNotFound) {
			// Burn the same bcrypt cost as a real comparison
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(req.Password))
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	if account.Role == constants.RoleEmployer && !account.IsApproved {
		return nil, domainErrors.ErrAccountNotApproved
	}

	token, expiresAt, err := jwtpkg.GenerateToken(account.ID, account.Email, account.Role, u.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Token:     token,
		UserID:    account.ID.String(),
		Role:      account.Role,
		ExpiresAt: expiresAt,
	}, nil
}
