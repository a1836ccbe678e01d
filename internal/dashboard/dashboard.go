// File: internal/dashboard/dashboard.go
package dashboard

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/plan"
	"studybuddy_backend/internal/profile"
	"studybuddy_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// View is the greeting shown on the main screen after login or signup.
type View struct {
	UID     string    `json:"uid"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Initial string    `json:"initial"`
	Plan    plan.Plan `json:"plan"`
}

// Handler serves the dashboard for the signed-in user.
type Handler struct {
	profiles profile.Store
	logger   *zap.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(profiles profile.Store, logger *zap.Logger) *Handler {
	return &Handler{profiles: profiles, logger: logger.Named("DashboardHandler")}
}

// RegisterRoutes sets up the dashboard route behind requireAuth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.GET("/dashboard", requireAuth, h.get)
}

func (h *Handler) get(c *gin.Context) {
	session, ok := shared.SessionFromContext(c.Request.Context())
	if !ok {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	common.RespondOK(c, "", h.build(c.Request.Context(), session))
}

// build never fails: a missing or unreadable profile falls back to the free plan.
func (h *Handler) build(ctx context.Context, s *shared.Session) View {
	var doc *profile.Document
	d, err := h.profiles.ReadProfile(ctx, s.UID)
	if err != nil {
		h.logger.Warn("Profile read failed; showing free plan", zap.String("uid", s.UID), zap.Error(err))
	} else {
		doc = d
	}

	id := plan.Free
	firstName := ""
	if doc != nil {
		firstName = doc.FirstName
		if doc.Plan.Valid() {
			id = doc.Plan
		}
	}
	p, _ := plan.Lookup(id)

	return View{
		UID:     s.UID,
		Email:   s.Email,
		Name:    DisplayName(firstName, s.Email),
		Initial: Initial(s.Email),
		Plan:    p,
	}
}

// DisplayName is the profile first name, or the local part of the email.
func DisplayName(firstName, email string) string {
	if name := strings.TrimSpace(firstName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Initial is the upper-cased first letter of the email, or "A".
func Initial(email string) string {
	r, _ := utf8.DecodeRuneInString(email)
	if r == utf8.RuneError {
		return "A"
	}
	return string(unicode.ToUpper(r))
}
