package models

type UserRole string
type UserStatus string
type PaymentMethod string
type PaymentStatus string
type TransactionStatus string
type SubscriptionStatus string

const (
	UserRoleAdmin   UserRole = "Admin"
	UserRoleTrainer UserRole = "Trainer"
	UserRoleMember  UserRole = "Member"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	PaymentMethodCash  PaymentMethod = "Cash"
	PaymentMethodMpesa PaymentMethod = "M-Pesa"

	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"

	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusFailed    TransactionStatus = "Failed"

	SubscriptionStatusActive    SubscriptionStatus = "Active"
	SubscriptionStatusExpired   SubscriptionStatus = "Expired"
	SubscriptionStatusCancelled SubscriptionStatus = "Cancelled"
)

// IsStaff reports whether the role may record payments and attendance.
func (r UserRole) IsStaff() bool {
	return r == UserRoleAdmin || r == UserRoleTrainer
}
