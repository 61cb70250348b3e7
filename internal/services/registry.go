package services

import (
	"gymtrack_backend/internal/config"
	"gymtrack_backend/internal/email"
	"gymtrack_backend/internal/repositories"

	"gorm.io/gorm"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	PlanService         PlanService
	PaymentService      PaymentService
	SubscriptionService SubscriptionService
	AttendanceService   AttendanceService
}

// NewServiceContainer wires repositories and services against the given
// database handle and gateway. The gateway is a parameter so tests can pass
// a fake without touching the provider.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, gateway MpesaGateway, mailer email.Sender) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)

	return &ServiceContainer{
		AuthService: NewAuthService(userRepo, tokenRepo),
		UserService: NewUserService(userRepo, mailer),
		PlanService: NewPlanService(planRepo),
		PaymentService: NewPaymentService(
			paymentRepo,
			subscriptionRepo,
			planRepo,
			userRepo,
			gateway,
			mailer,
			cfg.Payments.RetainFailedPayments,
		),
		SubscriptionService: NewSubscriptionService(subscriptionRepo),
		AttendanceService:   NewAttendanceService(attendanceRepo, userRepo),
	}
}
