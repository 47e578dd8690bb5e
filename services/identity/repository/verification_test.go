package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerjalink/kerjalink/internal/pkg/constants"
	"github.com/kerjalink/kerjalink/internal/pkg/database"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	domainErrors "github.com/kerjalink/kerjalink/services/identity/errors"
)

// setupVerificationRepoTest creates a repo backed by a miniredis server
func setupVerificationRepoTest(t *testing.T) (*IdentityRepo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	repo := NewIdentityRepo(
		&models.Config{OTP: models.OTPConfig{TTLSeconds: 300, CodeLength: 6}},
		nil,
		&database.RedisClient{Client: client},
	)

	return repo, mr
}

func testPending(code string) *models.PendingVerification {
	return &models.PendingVerification{
		Email:        "a@x.com",
		Role:         "employer",
		Code:         code,
		PasswordHash: "$2a$10$hash",
		FullName:     "Ace Employer",
		CompanyName:  "Acme",
		CreatedAt:    time.Now(),
	}
}

func TestStorePending_SetsTTL(t *testing.T) {
	repo, mr := setupVerificationRepoTest(t)

	err := repo.StorePending(context.Background(), testPending("123456"))
	require.NoError(t, err)

	key := fmt.Sprintf(constants.KeyPendingVerification, "a@x.com", "employer")
	require.True(t, mr.Exists(key))

	ttl := mr.TTL(key)
	assert.True(t, ttl > 0 && ttl <= 5*time.Minute, "expected TTL within 5 minutes, got %v", ttl)
}

func TestGetPending_Roundtrip(t *testing.T) {
	repo, _ := setupVerificationRepoTest(t)
	ctx := context.Background()

	require.NoError(t, repo.StorePending(ctx, testPending("123456")))

	pending, err := repo.GetPending(ctx, "a@x.com", "employer")
	require.NoError(t, err)
	assert.Equal(t, "123456", pending.Code)
	assert.Equal(t, "a@x.com", pending.Email)
	assert.Equal(t, "employer", pending.Role)
	assert.Equal(t, "Acme", pending.CompanyName)
}

func TestGetPending_NotFound(t *testing.T) {
	repo, _ := setupVerificationRepoTest(t)

	pending, err := repo.GetPending(context.Background(), "nobody@x.com", "jobseeker")
	assert.ErrorIs(t, err, domainErrors.ErrCodeNotFound)
	assert.Nil(t, pending)
}

func TestStorePending_ReissueOverwrites(t *testing.T) {
	repo, _ := setupVerificationRepoTest(t)
	ctx := context.Background()

	require.NoError(t, repo.StorePending(ctx, testPending("111111")))
	require.NoError(t, repo.StorePending(ctx, testPending("222222")))

	// Only the most recently issued code is live
	pending, err := repo.GetPending(ctx, "a@x.com", "employer")
	require.NoError(t, err)
	assert.Equal(t, "222222", pending.Code)
}

func TestGetPending_ExpiredByTTL(t *testing.T) {
	repo, mr := setupVerificationRepoTest(t)
	ctx := context.Background()

	require.NoError(t, repo.StorePending(ctx, testPending("123456")))

	mr.FastForward(6 * time.Minute)

	_, err := repo.GetPending(ctx, "a@x.com", "employer")
	assert.ErrorIs(t, err, domainErrors.ErrCodeNotFound)
}

func TestDeletePending_ConsumeOnce(t *testing.T) {
	repo, _ := setupVerificationRepoTest(t)
	ctx := context.Background()

	require.NoError(t, repo.StorePending(ctx, testPending("123456")))

	consumed, err := repo.DeletePending(ctx, "a@x.com", "employer")
	require.NoError(t, err)
	assert.True(t, consumed)

	// The losing side of a concurrent verification sees no deletion
	consumed, err = repo.DeletePending(ctx, "a@x.com", "employer")
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestPendingKeysAreScopedByRole(t *testing.T) {
	repo, _ := setupVerificationRepoTest(t)
	ctx := context.Background()

	employer := testPending("111111")
	jobseeker := testPending("222222")
	jobseeker.Role = "jobseeker"

	require.NoError(t, repo.StorePending(ctx, employer))
	require.NoError(t, repo.StorePending(ctx, jobseeker))

	got, err := repo.GetPending(ctx, "a@x.com", "employer")
	require.NoError(t, err)
	assert.Equal(t, "111111", got.Code)

	got, err = repo.GetPending(ctx, "a@x.com", "jobseeker")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)
}
