package handlers

import (
	"gymtrack_backend/internal/services"
	"gymtrack_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	PlanHandler         *PlanHandler
	PaymentHandler      *PaymentHandler
	SubscriptionHandler *SubscriptionHandler
	AttendanceHandler   *AttendanceHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService),
		UserHandler:         NewUserHandler(base, sc.UserService),
		PlanHandler:         NewPlanHandler(base, sc.PlanService),
		PaymentHandler:      NewPaymentHandler(base, sc.PaymentService),
		SubscriptionHandler: NewSubscriptionHandler(base, sc.SubscriptionService),
		AttendanceHandler:   NewAttendanceHandler(base, sc.AttendanceService),
	}
}
