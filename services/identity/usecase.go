package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/kerjalink/kerjalink/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/kerjalink/kerjalink/services/identity IdentityUC

// IdentityUC represents the identity and access usecase interface
type IdentityUC interface {
	// registration
	StartRegistration(ctx context.Context, req *models.RegisterRequest) error
	VerifyRegistration(ctx context.Context, req *models.VerifyRequest) (uuid.UUID, error)

	// sessions
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)

	// employer approval
	ApproveAccount(ctx context.Context, accountID string) error

	// account reads
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)

	// admin notifications
	ListNotifications(ctx context.Context) ([]*models.Notification, error)
}
