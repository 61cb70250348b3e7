package handlers

import (
	"net/http"

	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/middleware"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		BaseHandler: base,
		planService: planService,
	}
}

func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:id", h.GetPlan)
	}

	admin := rg.Group("/admin/plans")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.POST("", h.CreatePlan)
		admin.PUT("/:id", h.UpdatePlan)
		admin.DELETE("/:id", h.DeletePlan)
	}
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	plans, err := h.planService.ListPlans(activeOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"plans": plans})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, plan)
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, plan)
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req dto.UpdatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.planService.UpdatePlan(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, plan)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.planService.DeletePlan(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}
