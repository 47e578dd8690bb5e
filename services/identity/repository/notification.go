package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kerjalink/kerjalink/internal/pkg/models"
)

// CreateNotification records a pending admin action
func (r *IdentityRepo) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (id, kind, account_id, message, created_at)
		VALUES (:id, :kind, :account_id, :message, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// ListNotifications retrieves all unresolved notifications, newest first
func (r *IdentityRepo) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	query := `
		SELECT id, kind, account_id, message, created_at
		FROM notifications
		ORDER BY created_at DESC
	`

	var notifications []*models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// DeleteNotificationsByAccount resolves every notification for an account
func (r *IdentityRepo) DeleteNotificationsByAccount(ctx context.Context, accountID uuid.UUID) error {
	query := `
		DELETE FROM notifications
		WHERE account_id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	return nil
}
