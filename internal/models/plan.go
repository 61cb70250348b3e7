package models

import "github.com/shopspring/decimal"

// Plan is a membership tier. Rows referenced by subscriptions or payments
// must not be deleted; repositories enforce the PROTECT semantics.
type Plan struct {
	BaseModel
	Name         string          `gorm:"uniqueIndex;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DurationDays int             `gorm:"not null"`
	IsActive     bool            `gorm:"default:true"`
}
