package apperrors

import "net/http"

// Factories and predefined variables for domain errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- payments ---

// ErrInvalidPaymentMethod guards the unreachable branch of the method switch.
var ErrInvalidPaymentMethod = New(
	CodeInvalidPaymentMethod,
	"payments",
	"Unknown payment method",
	http.StatusBadRequest,
)

// ErrGatewayAuth wraps a failed credential exchange with the mobile-money provider.
func ErrGatewayAuth(err error) *AppError {
	return Wrap(err, CodeGatewayAuthFailed, "mpesa", "Failed to authenticate with payment gateway", http.StatusBadGateway)
}

// ErrGatewayRequest wraps a rejected or malformed push-payment exchange.
// The provider's raw message is surfaced to the caller; nothing is retried.
func ErrGatewayRequest(err error, providerMessage string) *AppError {
	msg := "Payment gateway request failed"
	if providerMessage != "" {
		msg = providerMessage
	}
	return Wrap(err, CodeGatewayRequestFailed, "mpesa", msg, http.StatusBadGateway)
}

// ErrPaymentFailed carries the provider's failure description from a callback.
func ErrPaymentFailed(resultDesc string) *AppError {
	msg := "Payment failed"
	if resultDesc != "" {
		msg = resultDesc
	}
	return New(CodePaymentFailed, "payments", msg, http.StatusBadRequest)
}

// --- callback reconciliation ---

var ErrTransactionNotFound = New(
	CodeReconciliationNotFound,
	"reconciliation",
	"Transaction not found",
	http.StatusBadRequest,
)

// ErrReconciliationInconsistent marks a transaction whose paired payment row
// is missing. It indicates a prior partial write and is never answered with
// a client error code.
func ErrReconciliationInconsistent(checkoutRequestID string) *AppError {
	return New(
		CodeReconciliationInconsistent,
		"reconciliation",
		"Transaction has no matching payment record",
		http.StatusInternalServerError,
	).WithDetails(map[string]string{"checkout_request_id": checkoutRequestID})
}

var ErrInvalidCallback = New(
	CodeInvalidCallback,
	"reconciliation",
	"Invalid callback data",
	http.StatusBadRequest,
)

// --- plans / subscriptions ---

var ErrPlanInUse = New(
	CodeConflict,
	"plans",
	"Cannot delete this plan because it has subscriptions or payments associated to it",
	http.StatusConflict,
)

var ErrPlanInactive = New(
	CodeInvalidOperation,
	"plans",
	"Plan is not active",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrAttendanceAlreadyMarked = New(
	CodeAlreadyExists,
	"attendance",
	"Attendance already marked for this date",
	http.StatusBadRequest,
)
