package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kerjalink/kerjalink/internal/pkg/logger"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	"github.com/kerjalink/kerjalink/internal/utils"
	"github.com/kerjalink/kerjalink/services/identity"
	domainErrors "github.com/kerjalink/kerjalink/services/identity/errors"
)

// AccountHandler handles account reads and admin operations
type AccountHandler struct {
	identityUC identity.IdentityUC
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(identityUC identity.IdentityUC) *AccountHandler {
	return &AccountHandler{identityUC: identityUC}
}

// GetAccount handles single-account retrieval
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID := c.Param("id")
	if accountID == "" {
		return utils.BadRequestResponse(c, "Invalid account ID")
	}

	account, err := h.identityUC.GetAccountByID(c.Request().Context(), accountID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAccountNotFound) {
			return utils.NotFoundResponse(c, "Account not found")
		}
		logger.Error("Failed to retrieve account", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to retrieve account")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Account retrieved successfully", account)
}

// ListAccounts returns all accounts as a bare array, which is what the
// admin-panel fallback aggregation consumes
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.identityUC.ListAccounts(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list accounts", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to list accounts")
	}

	if accounts == nil {
		accounts = []*models.Account{}
	}

	return c.JSON(http.StatusOK, accounts)
}

// ListNotifications returns unresolved admin notifications
func (h *AccountHandler) ListNotifications(c echo.Context) error {
	notifications, err := h.identityUC.ListNotifications(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list notifications", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to list notifications")
	}

	if notifications == nil {
		notifications = []*models.Notification{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}

// ApproveAccount handles the admin approval action. Approving an account that
// is already approved responds 200 like the first call.
func (h *AccountHandler) ApproveAccount(c echo.Context) error {
	accountID := c.Param("id")
	if accountID == "" {
		return utils.BadRequestResponse(c, "Invalid account ID")
	}

	if err := h.identityUC.ApproveAccount(c.Request().Context(), accountID); err != nil {
		if errors.Is(err, domainErrors.ErrAccountNotFound) {
			return utils.NotFoundResponse(c, "Account not found")
		}
		logger.Error("Failed to approve account", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to approve account")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Account approved", nil)
}
