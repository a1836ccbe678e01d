package firebase

import (
	"context"
	"errors"
	"net"
	"strings"

	"studybuddy_backend/internal/shared"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"google.golang.org/api/googleapi"
)

// createUserCode translates an Admin SDK error into a provider code.
func createUserCode(err error) string {
	msg := err.Error()
	switch {
	case auth.IsEmailAlreadyExists(err):
		return shared.CodeEmailInUse
	case strings.Contains(msg, "malformed email"), strings.Contains(msg, "INVALID_EMAIL"):
		return shared.CodeInvalidEmail
	case strings.Contains(msg, "password must be"), strings.Contains(msg, "WEAK_PASSWORD"):
		return shared.CodeWeakPassword
	case isNetworkError(err):
		return shared.CodeNetworkFailed
	case errorutils.IsPermissionDenied(err), strings.Contains(msg, "OPERATION_NOT_ALLOWED"):
		return shared.CodeOperationNotAllowed
	case errorutils.IsUnauthenticated(err):
		return shared.CodeInvalidAPIKey
	default:
		return shared.CodeInternal
	}
}

// signInCode translates an Identity Toolkit error into a provider code.
func signInCode(err error) string {
	if isNetworkError(err) {
		return shared.CodeNetworkFailed
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return shared.CodeInternal
	}
	msg := gerr.Message
	switch {
	case strings.HasPrefix(msg, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(msg, "INVALID_PASSWORD"),
		strings.HasPrefix(msg, "INVALID_LOGIN_CREDENTIALS"):
		return shared.CodeInvalidCredential
	case strings.HasPrefix(msg, "INVALID_EMAIL"):
		return shared.CodeInvalidEmail
	case strings.HasPrefix(msg, "USER_DISABLED"):
		return shared.CodeUserDisabled
	case strings.HasPrefix(msg, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return shared.CodeTooManyRequests
	case strings.HasPrefix(msg, "API key not valid"), strings.Contains(msg, "API_KEY_INVALID"):
		return shared.CodeInvalidAPIKey
	default:
		return shared.CodeInternal
	}
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errorutils.IsUnavailable(err) || errorutils.IsDeadlineExceeded(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
