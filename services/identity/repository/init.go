package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/kerjalink/kerjalink/internal/pkg/database"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
)

// IdentityRepo implements the identity service's durable stores: accounts and
// notifications in Postgres, pending verifications in Redis.
type IdentityRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewIdentityRepo creates a new identity repository instance
func NewIdentityRepo(cfg *models.Config, db *sqlx.DB, redisClient *database.RedisClient) *IdentityRepo {
	return &IdentityRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}
