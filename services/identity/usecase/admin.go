package usecase

import (
	"context"
	"fmt"

	"github.com/kerjalink/kerjalink/internal/pkg/constants"
	"github.com/kerjalink/kerjalink/internal/pkg/logger"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
)

// ApproveAccount transitions an employer account to approved. Idempotent:
// approving an already-approved account, or a role that is implicitly
// approved, is a no-op.
func (u *IdentityUC) ApproveAccount(ctx context.Context, accountID string) error {
	account, err := u.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if account.IsApproved || account.Role != constants.RoleEmployer {
		return nil
	}

	if err := u.accountRepo.ApproveAccount(ctx, account.ID); err != nil {
		return fmt.Errorf("failed to approve account: %w", err)
	}

	// The pending-approval feed entry is resolved by the approval
	if err := u.notificationRepo.DeleteNotificationsByAccount(ctx, account.ID); err != nil {
		logger.Error("Failed to clear notifications for approved account",
			logger.String("account_id", account.ID.String()),
			logger.Err(err))
	}

	logger.Info("Employer account approved",
		logger.String("account_id", account.ID.String()),
		logger.String("email", account.Email))

	return nil
}

// GetAccountByID retrieves a single account
func (u *IdentityUC) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	account, err := u.accountRepo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Belt and suspenders: the hash is never serialized, but clear it anyway
	account.PasswordHash = ""

	return account, nil
}

// ListAccounts retrieves all accounts for the admin panel
func (u *IdentityUC) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts, err := u.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		account.PasswordHash = ""
	}

	return accounts, nil
}

// ListNotifications retrieves all unresolved admin notifications
func (u *IdentityUC) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	return u.notificationRepo.ListNotifications(ctx)
}
