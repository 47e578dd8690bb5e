package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/kerjalink/kerjalink/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/kerjalink/kerjalink/services/identity AccountRepo,VerificationRepo,NotificationRepo

// AccountRepo represents the durable account store
type AccountRepo interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	ApproveAccount(ctx context.Context, id uuid.UUID) error
	ListAccounts(ctx context.Context) ([]*models.Account, error)
}

// VerificationRepo represents the self-expiring OTP ledger
type VerificationRepo interface {
	StorePending(ctx context.Context, pending *models.PendingVerification) error
	GetPending(ctx context.Context, email, role string) (*models.PendingVerification, error)
	// DeletePending reports whether a record was actually removed, which is
	// what decides races between concurrent verifications of the same code.
	DeletePending(ctx context.Context, email, role string) (bool, error)
}

// NotificationRepo represents the pending-admin-action feed
type NotificationRepo interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context) ([]*models.Notification, error)
	DeleteNotificationsByAccount(ctx context.Context, accountID uuid.UUID) error
}
