package apperrors

// ErrorCode identifies an error category in API responses.
type ErrorCode string

const (
	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication / authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Payments
	CodeInvalidPaymentMethod ErrorCode = "INVALID_PAYMENT_METHOD"
	CodeGatewayAuthFailed    ErrorCode = "GATEWAY_AUTH_FAILED"
	CodeGatewayRequestFailed ErrorCode = "GATEWAY_REQUEST_FAILED"
	CodePaymentFailed        ErrorCode = "PAYMENT_FAILED"

	// Callback reconciliation
	CodeReconciliationNotFound     ErrorCode = "RECONCILIATION_NOT_FOUND"
	CodeReconciliationInconsistent ErrorCode = "RECONCILIATION_INCONSISTENT"
	CodeInvalidCallback            ErrorCode = "INVALID_CALLBACK"
)
