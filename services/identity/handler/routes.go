package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kerjalink/kerjalink/internal/pkg/constants"
	"github.com/kerjalink/kerjalink/internal/pkg/middleware"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	"github.com/kerjalink/kerjalink/services/identity/handler/http"
)

// Handler coordinates the HTTP handlers for the identity service
type Handler struct {
	authHandler    *http.AuthHandler
	accountHandler *http.AccountHandler
	accounts       middleware.AccountLoader
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	accountHandler *http.AccountHandler,
	accounts middleware.AccountLoader,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler:    authHandler,
		accountHandler: accountHandler,
		accounts:       accounts,
		cfg:            cfg,
	}
}

// RegisterRoutes registers all identity routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Public routes (no authentication required)
	e.POST("/register/start", h.authHandler.StartRegistration)
	e.POST("/register/verify", h.authHandler.VerifyRegistration)
	e.POST("/login", h.authHandler.Login)

	// Protected routes behind the bearer-token gate
	protected := e.Group("", middleware.BearerAuthMiddleware(h.cfg.JWT, h.accounts))
	protected.GET("/users/:id", h.accountHandler.GetAccount)

	// Admin-only routes add the role guard on top of the gate
	adminGroup := protected.Group("", middleware.RequireRoles(constants.RoleAdmin))
	adminGroup.GET("/users", h.accountHandler.ListAccounts)
	adminGroup.GET("/notifications", h.accountHandler.ListNotifications)
	adminGroup.POST("/admin/approve/:id", h.accountHandler.ApproveAccount)
}
