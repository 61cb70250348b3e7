package handlers

import (
	"net/http"

	"gymtrack_backend/internal/middleware"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/services"
	"gymtrack_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	subs.Use(middleware.AuthMiddleware())
	{
		subs.GET("/my", h.MySubscriptions)
		subs.GET("/my/active", h.MyActiveSubscription)
	}

	admin := rg.Group("/admin/subscriptions")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListSubscriptions)
		admin.POST("/:id/cancel", h.CancelSubscription)
	}
}

func (h *SubscriptionHandler) MySubscriptions(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Missing identity"))
		return
	}

	subs, err := h.subscriptionService.ListMemberSubscriptions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"subscriptions": subs})
}

func (h *SubscriptionHandler) MyActiveSubscription(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Missing identity"))
		return
	}

	sub, err := h.subscriptionService.GetActiveSubscription(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, sub)
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.subscriptionService.ListSubscriptions()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"subscriptions": subs})
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	if err := h.subscriptionService.CancelSubscription(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}
