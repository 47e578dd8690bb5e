package usecase

import (
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	"github.com/kerjalink/kerjalink/services/identity"
)

// IdentityUC implements the identity and access usecase
type IdentityUC struct {
	accountRepo      identity.AccountRepo
	verificationRepo identity.VerificationRepo
	notificationRepo identity.NotificationRepo
	mailGW           identity.MailGW
	cfg              *models.Config
}

// NewIdentityUC creates a new identity usecase instance
func NewIdentityUC(
	accountRepo identity.AccountRepo,
	verificationRepo identity.VerificationRepo,
	notificationRepo identity.NotificationRepo,
	mailGW identity.MailGW,
	cfg *models.Config,
) *IdentityUC {
	return &IdentityUC{
		accountRepo:      accountRepo,
		verificationRepo: verificationRepo,
		notificationRepo: notificationRepo,
		mailGW:           mailGW,
		cfg:              cfg,
	}
}
