package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/kerjalink/kerjalink/internal/pkg/models"
	domainErrors "github.com/kerjalink/kerjalink/services/identity/errors"
)

// Postgres unique_violation
const pgUniqueViolation = "23505"

// CreateAccount creates a new account record. The unique index on email is
// the arbiter for concurrent registrations racing on the same address.
func (r *IdentityRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO accounts (id, email, password_hash, full_name, role,
			is_approved, company_name, industry, skills, created_at, updated_at
		) VALUES (:id, :email, :password_hash, :full_name, :role,
			:is_approved, :company_name, :industry, :skills, :created_at, :updated_at)
	`
	_, err = tx.NamedExecContext(ctx, query, account)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domainErrors.ErrDuplicateRegistration
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAccountByEmail retrieves an account by its normalized email
func (r *IdentityRepo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_approved,
			company_name, industry, skills, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// GetAccountByID retrieves an account by its identifier
func (r *IdentityRepo) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainErrors.ErrAccountNotFound
	}

	query := `
		SELECT id, email, password_hash, full_name, role, is_approved,
			company_name, industry, skills, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var account models.Account
	err = r.db.GetContext(ctx, &account, query, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// ApproveAccount marks an account as approved
func (r *IdentityRepo) ApproveAccount(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE accounts
		SET is_approved = true, updated_at = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to approve account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domainErrors.ErrAccountNotFound
	}

	return nil
}

// ListAccounts retrieves all accounts, newest first
func (r *IdentityRepo) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_approved,
			company_name, industry, skills, created_at, updated_at
		FROM accounts
		ORDER BY created_at DESC
	`

	var accounts []*models.Account
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}
