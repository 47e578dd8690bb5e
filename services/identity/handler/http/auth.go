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

// AuthHandler handles registration and login requests
type AuthHandler struct {
	identityUC identity.IdentityUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityUC identity.IdentityUC) *AuthHandler {
	return &AuthHandler{identityUC: identityUC}
}

// StartRegistration handles OTP issuance for a new registration
func (h *AuthHandler) StartRegistration(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" || req.Role == "" {
		return utils.BadRequestResponse(c, "Email, password and role are required")
	}
	if !utils.ValidateEmail(utils.NormalizeEmail(req.Email)) {
		return utils.BadRequestResponse(c, "Invalid email address")
	}

	if err := h.identityUC.StartRegistration(c.Request().Context(), &req); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrDuplicateRegistration):
			return utils.ConflictResponse(c, "An account with this email already exists")
		case errors.Is(err, domainErrors.ErrInvalidRole):
			return utils.BadRequestResponse(c, "Role must be jobseeker or employer")
		default:
			logger.Error("Failed to start registration", logger.Err(err))
			return utils.InternalServerErrorResponse(c, "Failed to start registration")
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, "Verification code sent", nil)
}

// VerifyRegistration handles OTP verification and account creation
func (h *AuthHandler) VerifyRegistration(c echo.Context) error {
	var req models.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Role == "" || req.Code == "" {
		return utils.BadRequestResponse(c, "Email, role and code are required")
	}

	accountID, err := h.identityUC.VerifyRegistration(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrCodeNotFound):
			return utils.NotFoundResponse(c, "Verification code not found")
		case errors.Is(err, domainErrors.ErrCodeExpired):
			return utils.BadRequestResponse(c, "Verification code has expired")
		case errors.Is(err, domainErrors.ErrCodeMismatch):
			return utils.BadRequestResponse(c, "Verification code does not match")
		case errors.Is(err, domainErrors.ErrDuplicateRegistration):
			return utils.ConflictResponse(c, "An account with this email already exists")
		default:
			logger.Error("Failed to verify registration", logger.Err(err))
			return utils.InternalServerErrorResponse(c, "Failed to verify registration")
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, "Registration verified",
		models.VerifyResponse{AccountID: accountID.String()})
}

// Login handles credential validation and session token issuance
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return utils.BadRequestResponse(c, "Email and password are required")
	}

	resp, err := h.identityUC.Login(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			return utils.UnauthorizedResponse(c, "Invalid email or password")
		case errors.Is(err, domainErrors.ErrAccountNotApproved):
			return utils.ForbiddenResponse(c, "Account is awaiting admin approval")
		default:
			logger.Error("Failed to login", logger.Err(err))
			return utils.InternalServerErrorResponse(c, "Failed to login")
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}
