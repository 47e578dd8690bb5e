package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	jwtpkg "github.com/kerjalink/kerjalink/internal/pkg/jwt"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	"github.com/kerjalink/kerjalink/internal/utils"
	domainErrors "github.com/kerjalink/kerjalink/services/identity/errors"
)

// AccountLoader resolves the account referenced by a token's subject claim
type AccountLoader interface {
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
}

// BearerAuthMiddleware validates the session token on every protected request
// and attaches the authenticated account to the echo context. The account is
// re-loaded from the store so a deletion after token issuance locks the
// bearer out immediately.
func BearerAuthMiddleware(config models.JWTConfig, accounts AccountLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid or expired token")
			}

			account, err := accounts.GetAccountByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domainErrors.ErrAccountNotFound) {
					return utils.UnauthorizedResponse(c, "Account no longer exists")
				}
				return utils.InternalServerErrorResponse(c, "Failed to load account")
			}

			c.Set("account", account)
			c.Set("user_id", account.ID)
			c.Set("user_role", account.Role)

			return next(c)
		}
	}
}

// RequireRoles enforces that the authenticated account's role is in the
// allowed set. Must run after BearerAuthMiddleware.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("user_role").(string)
			if !ok {
				return utils.UnauthorizedResponse(c, "Missing authentication context")
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return utils.ForbiddenResponse(c, "Insufficient role for this operation")
		}
	}
}

// AccountFromContext extracts the authenticated account set by BearerAuthMiddleware
func AccountFromContext(c echo.Context) (*models.Account, bool) {
	account, ok := c.Get("account").(*models.Account)
	return account, ok
}
