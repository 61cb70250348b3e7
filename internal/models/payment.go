package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Payment struct {
	BaseModel
	MemberID    string          `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Method      PaymentMethod   `gorm:"type:varchar(10);not null"`
	Reference   string          `gorm:"uniqueIndex;not null"`
	PlanID      string          `gorm:"not null;index"`
	RecordedBy  string          `gorm:"index"`
	ConfirmedBy *string
	Status      PaymentStatus `gorm:"type:varchar(10);default:'Pending'"`

	// Relations
	Member Member `gorm:"foreignKey:MemberID"`
	Plan   Plan   `gorm:"foreignKey:PlanID"`
}

// Member aliases User for readability on payment relations.
type Member = User

// MpesaTransaction is the mobile-money leg of a payment attempt. Exactly one
// row exists per CheckoutRequestID; the callback joins on it and flips the
// status out of Pending exactly once.
type MpesaTransaction struct {
	BaseModel
	MerchantRequestID  string          `gorm:"not null"`
	CheckoutRequestID  string          `gorm:"uniqueIndex;not null"`
	Reference          string          `gorm:"index;not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(10,2)"`
	PhoneNumber        string
	Description        string
	Status             TransactionStatus `gorm:"type:varchar(10);default:'Pending'"`
	ResultCode         *int
	ResultDesc         string
	MpesaReceiptNumber string
	TransactionDate    int64
	RawCallback        datatypes.JSON `gorm:"type:jsonb"`
}
