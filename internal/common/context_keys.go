// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// SessionKey is the gin context key holding the authenticated *shared.Session
	SessionKey = "session"
	// LoggerKey is the gin context key holding the request scoped *zap.Logger
	LoggerKey = "logger"
)
