// Package reference generates transaction references and composite
// subscription identifiers.
package reference

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"gymtrack_backend/internal/models"

	"github.com/google/uuid"
)

// digitCount keeps references at a stable length for storage and display.
const digitCount = 12

// refPrefixLen is how much of the payment reference a subscription id keeps.
const refPrefixLen = 8

// Generate returns a method-tagged transaction reference: a 3-letter tag
// followed by digits derived from a random 128-bit value.
func Generate(method models.PaymentMethod) string {
	var tag string
	switch method {
	case models.PaymentMethodMpesa:
		tag = "MPE"
	case models.PaymentMethodCash:
		tag = "CSH"
	default:
		tag = "OTH"
	}

	id := uuid.New()
	n := new(big.Int).SetBytes(id[:])

	digits := n.String()
	if len(digits) < digitCount {
		digits = strings.Repeat("0", digitCount-len(digits)) + digits
	}

	return tag + digits[:digitCount]
}

// SubscriptionID builds a deterministic composite identifier from the payment
// reference, the member id and the current time, so a subscription stays
// human-traceable to its originating payment without a second lookup.
func SubscriptionID(paymentReference, memberID string, at time.Time) string {
	prefix := paymentReference
	if len(prefix) > refPrefixLen {
		prefix = prefix[:refPrefixLen]
	}
	return fmt.Sprintf("SUB-%s-%s-%s", prefix, memberID, at.Format("20060102150405"))
}
