// File: internal/auth/model.go
package auth

import (
	"studybuddy_backend/internal/shared"
	"studybuddy_backend/internal/signup"
)

// LoginRequest is the body of POST /auth/login. The field checks live in the
// service so the user sees the same messages as on the login screen.
type LoginRequest struct {
	Email    string `json:"email" binding:"max=254"`
	Password string `json:"password" binding:"max=128"`
}

// LoginResponse carries the session and where the client should go next.
type LoginResponse struct {
	Session    *shared.Session   `json:"session"`
	Navigation signup.Navigation `json:"navigation"`
}

// LogoutResponse always sends the client back to the login screen.
type LogoutResponse struct {
	Navigation signup.Navigation `json:"navigation"`
}
