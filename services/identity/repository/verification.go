package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kerjalink/kerjalink/internal/pkg/constants"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	domainErrors "github.com/kerjalink/kerjalink/services/identity/errors"
)

func pendingKey(email, role string) string {
	return fmt.Sprintf(constants.KeyPendingVerification, email, role)
}

// StorePending stores a pending verification with an absolute TTL. The key is
// derived from (email, role), so re-issuing a code overwrites the prior one:
// at most one live code per pair, newest authoritative.
func (r *IdentityRepo) StorePending(ctx context.Context, pending *models.PendingVerification) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending verification: %w", err)
	}

	ttl := time.Duration(r.cfg.OTP.TTLSeconds) * time.Second
	if err := r.redisClient.Set(ctx, pendingKey(pending.Email, pending.Role), data, ttl); err != nil {
		return fmt.Errorf("failed to store pending verification: %w", err)
	}

	return nil
}

// GetPending retrieves the live pending verification for an (email, role) pair
func (r *IdentityRepo) GetPending(ctx context.Context, email, role string) (*models.PendingVerification, error) {
	data, err := r.redisClient.Get(ctx, pendingKey(email, role))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get pending verification: %w", err)
	}

	var pending models.PendingVerification
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending verification: %w", err)
	}

	return &pending, nil
}

// DeletePending consumes a pending verification. The returned bool reports
// whether this caller removed the record; a concurrent verification that lost
// the race sees false.
func (r *IdentityRepo) DeletePending(ctx context.Context, email, role string) (bool, error) {
	deleted, err := r.redisClient.Delete(ctx, pendingKey(email, role))
	if err != nil {
		return false, fmt.Errorf("failed to delete pending verification: %w", err)
	}

	return deleted > 0, nil
}
