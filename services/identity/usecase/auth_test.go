package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/kerjalink/kerjalink/internal/pkg/constants"
	jwtpkg "github.com/kerjalink/kerjalink/internal/pkg/jwt"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	domainErrors "github.com/kerjalink/kerjalink/services/identity/errors"
	"github.com/kerjalink/kerjalink/services/identity/mocks"
)

type ucMocks struct {
	accountRepo      *mocks.MockAccountRepo
	verificationRepo *mocks.MockVerificationRepo
	notificationRepo *mocks.MockNotificationRepo
	mailGW           *mocks.MockMailGW
}

func setupUsecaseTest(t *testing.T) (*IdentityUC, ucMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := ucMocks{
		accountRepo:      mocks.NewMockAccountRepo(ctrl),
		verificationRepo: mocks.NewMockVerificationRepo(ctrl),
		notificationRepo: mocks.NewMockNotificationRepo(ctrl),
		mailGW:           mocks.NewMockMailGW(ctrl),
	}

	cfg := &models.Config{
		JWT: models.JWTConfig{Secret: "test-secret", Expiration: 1440, Issuer: "kerjalink"},
		OTP: models.OTPConfig{TTLSeconds: 300, CodeLength: 6},
	}

	uc := NewIdentityUC(m.accountRepo, m.verificationRepo, m.notificationRepo, m.mailGW, cfg)
	return uc, m
}

func TestStartRegistration_InvalidRole(t *testing.T) {
	uc, _ := setupUsecaseTest(t)

	err := uc.StartRegistration(context.Background(), &models.RegisterRequest{
		Email:    "user@example.com",
		Password: "secret",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidRole)
}

func TestStartRegistration_DuplicateEmail(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.accountRepo.EXPECT().
		GetAccountByEmail(gomock.Any(), "user@example.com").
		Return(&models.Account{Email: "user@example.com"}, nil)

	err := uc.StartRegistration(context.Background(), &models.RegisterRequest{
		Email:    "User@Example.com",
		Password: "secret",
		Role:     constants.RoleJobseeker,
	})

	assert.ErrorIs(t, err, domainErrors.ErrDuplicateRegistration)
}

func TestStartRegistration_Success(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	var stored *models.PendingVerification
	var sentCode string

	m.accountRepo.EXPECT().
		GetAccountByEmail(gomock.Any(), "employer@acme.com").
		Return(nil, domainErrors.ErrAccountNotFound)
	m.verificationRepo.EXPECT().
		StorePending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pending *models.PendingVerification) error {
			stored = pending
			return nil
		})
	m.mailGW.EXPECT().
		SendOTPEmail(gomock.Any(), "employer@acme.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, code string) error {
			sentCode = code
			return nil
		})

	err := uc.StartRegistration(context.Background(), &models.RegisterRequest{
		Email:       "  Employer@Acme.com ",
		Password:    "hunter2hunter2",
		FullName:    "Ace Employer",
		Role:        constants.RoleEmployer,
		CompanyName: "Acme",
		Industry:    "Logistics",
	})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, "employer@acme.com", stored.Email)
	assert.Equal(t, constants.RoleEmployer, stored.Role)
	assert.Equal(t, "Acme", stored.CompanyName)
	assert.Len(t, stored.Code, 6)
	assert.Equal(t, stored.Code, sentCode)

	// The plaintext password never reaches the ledger
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))
}

func TestStartRegistration_DispatchFailure(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.accountRepo.EXPECT().
		GetAccountByEmail(gomock.Any(), gomock.Any()).
		Return(nil, domainErrors.ErrAccountNotFound)
	m.verificationRepo.EXPECT().
		StorePending(gomock.Any(), gomock.Any()).
		Return(nil)
	m.mailGW.EXPECT().
		SendOTPEmail(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("nsqd unreachable"))

	err := uc.StartRegistration(context.Background(), &models.RegisterRequest{
		Email:    "user@example.com",
		Password: "secret",
		Role:     constants.RoleJobseeker,
	})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domainErrors.ErrDuplicateRegistration)
}

func pendingFixture(role, code string, age time.Duration) *models.PendingVerification {
	return &models.PendingVerification{
		Email:        "user@example.com",
		Role:         role,
		Code:         code,
		PasswordHash: "$2a$10$hash",
		FullName:     "Test User",
		CreatedAt:    time.Now().Add(-age),
	}
}

func TestVerifyRegistration_NoPendingCode(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(nil, domainErrors.ErrCodeNotFound)

	_, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleJobseeker,
		Code:  "123456",
	})

	assert.ErrorIs(t, err, domainErrors.ErrCodeNotFound)
}

func TestVerifyRegistration_Expired(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(pendingFixture(constants.RoleJobseeker, "123456", 10*time.Minute), nil)
	m.verificationRepo.EXPECT().
		DeletePending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(true, nil)

	_, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleJobseeker,
		Code:  "123456",
	})

	assert.ErrorIs(t, err, domainErrors.ErrCodeExpired)
}

func TestVerifyRegistration_WrongCode(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(pendingFixture(constants.RoleJobseeker, "123456", time.Minute), nil)

	_, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleJobseeker,
		Code:  "654321",
	})

	assert.ErrorIs(t, err, domainErrors.ErrCodeMismatch)
}

func TestVerifyRegistration_LostConsumeRace(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(pendingFixture(constants.RoleJobseeker, "123456", time.Minute), nil)
	m.verificationRepo.EXPECT().
		DeletePending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(false, nil)

	_, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleJobseeker,
		Code:  "123456",
	})

	assert.ErrorIs(t, err, domainErrors.ErrCodeNotFound)
}

func TestVerifyRegistration_JobseekerApprovedImmediately(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	var created *models.Account

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(pendingFixture(constants.RoleJobseeker, "123456", time.Minute), nil)
	m.verificationRepo.EXPECT().
		DeletePending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(true, nil)
	m.accountRepo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, account *models.Account) error {
			account.ID = uuid.New()
			created = account
			return nil
		})

	accountID, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleJobseeker,
		Code:  "123456",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, accountID)
	assert.True(t, created.IsApproved)
	assert.Equal(t, "$2a$10$hash", created.PasswordHash)
}

func TestVerifyRegistration_EmployerStartsUnapproved(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	var created *models.Account
	var notified *models.Notification

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleEmployer).
		Return(pendingFixture(constants.RoleEmployer, "123456", time.Minute), nil)
	m.verificationRepo.EXPECT().
		DeletePending(gomock.Any(), "user@example.com", constants.RoleEmployer).
		Return(true, nil)
	m.accountRepo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, account *models.Account) error {
			account.ID = uuid.New()
			created = account
			return nil
		})
	m.notificationRepo.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, notification *models.Notification) error {
			notified = notification
			return nil
		})

	accountID, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleEmployer,
		Code:  "123456",
	})
	require.NoError(t, err)

	assert.False(t, created.IsApproved)
	require.NotNil(t, notified)
	assert.Equal(t, constants.NotificationEmployerPending, notified.Kind)
	assert.Equal(t, accountID, notified.AccountID)
}

func TestVerifyRegistration_NotificationFailureIsNonFatal(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleEmployer).
		Return(pendingFixture(constants.RoleEmployer, "123456", time.Minute), nil)
	m.verificationRepo.EXPECT().
		DeletePending(gomock.Any(), "user@example.com", constants.RoleEmployer).
		Return(true, nil)
	m.accountRepo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(nil)
	m.notificationRepo.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(errors.New("notifications table unavailable"))

	_, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleEmployer,
		Code:  "123456",
	})

	assert.NoError(t, err)
}

func TestVerifyRegistration_AccountRaceLosesToUnique(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.verificationRepo.EXPECT().
		GetPending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(pendingFixture(constants.RoleJobseeker, "123456", time.Minute), nil)
	m.verificationRepo.EXPECT().
		DeletePending(gomock.Any(), "user@example.com", constants.RoleJobseeker).
		Return(true, nil)
	m.accountRepo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(domainErrors.ErrDuplicateRegistration)

	_, err := uc.VerifyRegistration(context.Background(), &models.VerifyRequest{
		Email: "user@example.com",
		Role:  constants.RoleJobseeker,
		Code:  "123456",
	})

	assert.ErrorIs(t, err, domainErrors.ErrDuplicateRegistration)
}

func accountFixture(t *testing.T, role, password string, approved bool) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.Account{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsApproved:   approved,
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.accountRepo.EXPECT().
		GetAccountByEmail(gomock.Any(), "nobody@example.com").
		Return(nil, domainErrors.ErrAccountNotFound)

	resp, err := uc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.accountRepo.EXPECT().
		GetAccountByEmail(gomock.Any(), "user@example.com").
		Return(accountFixture(t, constants.RoleJobseeker, "correct-password", true), nil)

	resp, err := uc.Login(context.Background(), &models.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLogin_UnapprovedEmployer(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	m.accountRepo.EXPECT().
		GetAccountByEmail(gomock.Any(), "user@example.com").
		Return(accountFixture(t, constants.RoleEmployer, "correct-password", false), nil)

	resp, err := uc.Login(context.Background(), &models.LoginRequest{
		Email:    "user@example.com",
		Password: "correct-password",
	})

	assert.ErrorIs(t, err, domainErrors.ErrAccountNotApproved)
	assert.Nil(t, resp)
}

func TestLogin_Success(t *testing.T) {
	uc, m := setupUsecaseTest(t)

	account := accountFixture(t, constants.RoleJobseeker, "correct-password", true)
	m.accountRepo.EXPECT().
		GetAccountByEmail(gomock.Any(), "user@example.com").
		Return(account, nil)

	resp, err := uc.Login(context.Background(), &models.LoginRequest{
		Email:    "User@Example.COM",
		Password: "correct-password",
	})
	require.NoError(t, err)

	assert.Equal(t, account.ID.String(), resp.UserID)
	assert.Equal(t, constants.RoleJobseeker, resp.Role)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := jwtpkg.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.UserID)
	assert.Equal(t, constants.RoleJobseeker, claims.Role)
}
