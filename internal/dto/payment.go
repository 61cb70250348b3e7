package dto

// InitiatePaymentRequest records a payment for a member. PhoneNumber and
// Description only apply to the mobile-money method.
type InitiatePaymentRequest struct {
	MemberID    string `json:"member_id" validate:"required,uuid4"`
	PlanID      string `json:"plan_id" validate:"required,uuid4"`
	Method      string `json:"method" validate:"required,is-payment-method"`
	PhoneNumber string `json:"phone_number" validate:"required_if=Method M-Pesa,is-msisdn"`
	Description string `json:"description" validate:"max=200"`
}
