package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents a pending admin action surfaced on the admin panel
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Kind      string    `json:"kind" db:"kind"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
