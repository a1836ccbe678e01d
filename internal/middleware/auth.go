// File: internal/middleware/auth.go
package middleware

import (
	"studybuddy_backend/internal/auth"
	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the bearer ID token and puts the session on the request context.
func AuthMiddleware(authenticator shared.Authenticator, blocklist auth.TokenBlocklistService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(common.AuthorizationHeader) == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		idToken := common.GetTokenFromContext(c)
		if idToken == "" {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		blocked, err := blocklist.IsBlocklisted(c.Request.Context(), idToken)
		if err != nil {
			logger.Error("Blocklist lookup failed", zap.Error(err))
			common.RespondWithError(c, common.ErrInternalServer)
			return
		}
		if blocked {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Session has been signed out."))
			return
		}

		session, err := authenticator.VerifySession(c.Request.Context(), idToken)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired session."))
			return
		}

		c.Set(common.SessionKey, session)
		c.Request = c.Request.WithContext(shared.WithSession(c.Request.Context(), session))

		logger.Debug("User authenticated successfully", zap.String("uid", session.UID))
		c.Next()
	}
}

// GetSessionFromContext retrieves the session set by AuthMiddleware.
func GetSessionFromContext(c *gin.Context) *shared.Session {
	val, exists := c.Get(common.SessionKey)
	if !exists {
		return nil
	}
	session, ok := val.(*shared.Session)
	if !ok {
		return nil
	}
	return session
}
