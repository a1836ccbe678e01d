// File: internal/signup/handler.go
package signup

import (
	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes the signup flow over HTTP.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new signup handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("SignupHandler")}
}

type identityRequest struct {
	FirstName       string `json:"first_name" binding:"max=100"`
	LastName        string `json:"last_name" binding:"max=100"`
	Email           string `json:"email" binding:"max=254"`
	Password        string `json:"password" binding:"max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"max=128"`
}

func (r identityRequest) input() IdentityInput {
	return IdentityInput(r)
}

type planRequest struct {
	Plan string `json:"plan" binding:"omitempty,oneof=free medium premium"`
}

type paymentRequest struct {
	CardNumber     string `json:"card_number" binding:"max=64"`
	Expiry         string `json:"expiry" binding:"max=64"`
	CVC            string `json:"cvc" binding:"max=64"`
	CardholderName string `json:"cardholder_name" binding:"max=200"`
	BillingAddress string `json:"billing_address" binding:"max=300"`
}

// RegisterRoutes sets up the signup and plan catalog routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/plans", h.listPlans)

	signupGroup := router.Group("/signup")
	{
		signupGroup.POST("", h.start)
		signupGroup.POST("/progress", h.progress)
		signupGroup.GET("/:id", h.get)
		signupGroup.POST("/:id/identity", h.submitIdentity)
		signupGroup.POST("/:id/plan", h.selectPlan)
		signupGroup.POST("/:id/payment", h.submitPayment)
		signupGroup.POST("/:id/back", h.back)
	}
}

func (h *Handler) flowID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.logger.Debug("Invalid signup flow ID", zap.String("paramID", c.Param("id")))
		common.RespondWithError(c, ErrFlowNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) listPlans(c *gin.Context) {
	common.RespondOK(c, "Plans retrieved successfully.", plan.Catalog())
}

func (h *Handler) start(c *gin.Context) {
	res := h.service.Start(c.Request.Context())
	common.RespondCreated(c, "Signup flow started.", res)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.flowID(c)
	if !ok {
		return
	}
	snap, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signup flow retrieved successfully.", snap)
}

func (h *Handler) progress(c *gin.Context) {
	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	common.RespondOK(c, "", h.service.Progress(req.input()))
}

func (h *Handler) submitIdentity(c *gin.Context) {
	id, ok := h.flowID(c)
	if !ok {
		return
	}
	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Signup identity: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	res, err := h.service.SubmitIdentity(c.Request.Context(), id, req.input())
	if err != nil {
		common.RespondWithError(c, toAPIError(err))
		return
	}
	common.RespondOK(c, "Identity accepted.", res)
}

func (h *Handler) selectPlan(c *gin.Context) {
	id, ok := h.flowID(c)
	if !ok {
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Signup plan: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	res, err := h.service.SelectPlan(c.Request.Context(), id, plan.ID(req.Plan))
	if err != nil {
		common.RespondWithError(c, toAPIError(err))
		return
	}
	if res.Account != nil {
		common.RespondCreated(c, "Account created successfully.", res)
		return
	}
	common.RespondOK(c, "Plan selected.", res)
}

func (h *Handler) submitPayment(c *gin.Context) {
	id, ok := h.flowID(c)
	if !ok {
		return
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Signup payment: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	res, err := h.service.SubmitPayment(c.Request.Context(), id, PaymentInput(req))
	if err != nil {
		common.RespondWithError(c, toAPIError(err))
		return
	}
	common.RespondCreated(c, "Payment accepted and account created.", res)
}

func (h *Handler) back(c *gin.Context) {
	id, ok := h.flowID(c)
	if !ok {
		return
	}
	res, err := h.service.Back(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, toAPIError(err))
		return
	}
	common.RespondOK(c, "", res)
}
