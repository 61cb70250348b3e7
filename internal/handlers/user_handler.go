package handlers

import (
	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/middleware"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/services"
	"gymtrack_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RequireStaff(), h.ListUsers)
		users.GET("/:id", middleware.RequireStaff(), h.GetUser)
		users.POST("/:id/approve", middleware.RequireStaff(), h.ApproveUser)
		users.PUT("/:id", middleware.RequireRoles(models.UserRoleAdmin), h.UpdateUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var role *models.UserRole
	if q := c.Query("role"); q != "" {
		r := models.UserRole(q)
		role = &r
	}

	users, err := h.userService.ListUsers(role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"users": users})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, user)
}

func (h *UserHandler) ApproveUser(c *gin.Context) {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Missing identity"))
		return
	}

	user, err := h.userService.ApproveUser(role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Missing identity"))
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, user)
}
