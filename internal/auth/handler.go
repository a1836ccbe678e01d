// File: internal/auth/handler.go
package auth

import (
	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/shared"
	"studybuddy_backend/internal/signup"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("AuthHandler")}
}

// RegisterRoutes sets up the routes for authentication operations.
// requireAuth guards the routes that need a session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", requireAuth, h.logout)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Login successful.", LoginResponse{
		Session:    session,
		Navigation: signup.Navigation{Action: signup.NavReplace, Screen: signup.ScreenDashboard},
	})
}

func (h *Handler) logout(c *gin.Context) {
	session, _ := shared.SessionFromContext(c.Request.Context())
	h.service.Logout(c.Request.Context(), session)
	common.RespondOK(c, "Logout successful.", LogoutResponse{
		Navigation: signup.Navigation{Action: signup.NavReplace, Screen: signup.ScreenLogin},
	})
}
