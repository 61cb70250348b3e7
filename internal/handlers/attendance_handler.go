package handlers

import (
	"time"

	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/middleware"
	"gymtrack_backend/internal/services"
	"gymtrack_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	*BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(base *BaseHandler, attendanceService services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       base,
		attendanceService: attendanceService,
	}
}

func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	attendance := rg.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("", middleware.RequireStaff(), h.MarkAttendance)
		attendance.GET("", middleware.RequireStaff(), h.ListAttendance)
		attendance.GET("/my", h.MyAttendance)
	}
}

func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Missing identity"))
		return
	}

	var req dto.MarkAttendanceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.MarkAttendance(actorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondCreated(c, record)
}

func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var date *time.Time
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid date filter"))
			return
		}
		date = &parsed
	}

	records, err := h.attendanceService.ListAttendance(date)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"attendance": records})
}

func (h *AttendanceHandler) MyAttendance(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Missing identity"))
		return
	}

	records, err := h.attendanceService.ListMemberAttendance(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondOK(c, gin.H{"attendance": records})
}
