package handlers

import (
	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/middleware"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/mpesa"
	"gymtrack_backend/internal/services"
	"gymtrack_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("", middleware.RequireStaff(), h.InitiatePayment)
		payments.GET("", middleware.RequireStaff(), h.ListPayments)
		payments.GET("/:id/status", h.GetPaymentStatus)
	}

	// The provider posts here; the endpoint is unauthenticated by design and
	// validates the payload shape instead.
	rg.POST("/mpesa/callback", h.MpesaCallback)
}

func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Missing identity"))
		return
	}

	var req dto.InitiatePaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	var method services.PaymentMethod
	switch models.PaymentMethod(req.Method) {
	case models.PaymentMethodCash:
		method = services.Cash{}
	case models.PaymentMethodMpesa:
		method = services.MobileMoney{
			PhoneNumber: req.PhoneNumber,
			Description: req.Description,
		}
	default:
		h.HandleServiceError(c, apperrors.ErrInvalidPaymentMethod)
		return
	}

	result, err := h.paymentService.InitiatePayment(c.Request.Context(), actorID, req.MemberID, req.PlanID, method)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, result)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var (
		payments []models.Payment
		err      error
	)
	if memberID := c.Query("member_id"); memberID != "" {
		payments, err = h.paymentService.ListMemberPayments(memberID)
	} else {
		payments, err = h.paymentService.ListPayments()
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"payments": payments})
}

func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	status, err := h.paymentService.GetPaymentStatus(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Members may only look at their own payments.
	role, _ := middleware.CurrentRole(c)
	if !role.IsStaff() {
		callerID, _ := middleware.CurrentUserID(c)
		if status.Payment.MemberID != callerID {
			h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
			return
		}
	}

	h.RespondOK(c, status)
}

func (h *PaymentHandler) MpesaCallback(c *gin.Context) {
	ctx := c.Request.Context()

	var envelope mpesa.CallbackEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		logger.CtxWithError(ctx, "Malformed callback payload", err)
		apperrors.HandleError(c, apperrors.ErrInvalidCallback)
		return
	}

	txn, err := h.paymentService.ProcessCallback(ctx, &envelope)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"transaction": txn})
}
