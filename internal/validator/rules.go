package validator

import (
	"log"
	"strings"
	"unicode"

	"gymtrack_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-payment-method", validatePaymentMethod)
	mustRegister("is-msisdn", validateMsisdn)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}

	switch models.UserRole(value) {
	case models.UserRoleAdmin, models.UserRoleTrainer, models.UserRoleMember:
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.PaymentMethod(value) {
	case models.PaymentMethodCash, models.PaymentMethodMpesa:
		return true
	}
	return false
}

// validateMsisdn accepts international-format numbers like 254700000000,
// with an optional leading plus.
func validateMsisdn(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	value = strings.TrimPrefix(value, "+")
	if len(value) < 10 || len(value) > 15 {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
