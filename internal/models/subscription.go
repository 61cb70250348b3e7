package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription is created only once a payment reaches Completed. AmountPaid
// snapshots the plan price at payment time; later price changes do not
// rewrite history.
type Subscription struct {
	BaseModelWithDeleted
	SubscriptionID   string          `gorm:"uniqueIndex;not null"`
	MemberID         string          `gorm:"not null;index"`
	PlanID           string          `gorm:"not null;index"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StartDate        time.Time       `gorm:"not null"`
	EndDate          time.Time       `gorm:"not null"`
	Status           SubscriptionStatus `gorm:"type:varchar(10);default:'Active'"`
	PaymentReference string             `gorm:"index;not null"`

	// Relations
	Member User `gorm:"foreignKey:MemberID"`
	Plan   Plan `gorm:"foreignKey:PlanID"`
}
