package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymtrack_backend/internal/config"
	"gymtrack_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.MpesaConfig {
	return config.MpesaConfig{
		Env:            "sandbox",
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		Shortcode:      "174379",
		Passkey:        "passkey",
		CallbackURL:    "https://example.com/api/v1/mpesa/callback",
		TimeoutSeconds: 5,
	}
}

func newTestClient(serverURL string) *Client {
	c := NewClient(testConfig())
	c.BaseURL = serverURL
	c.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC)
	}
	return c
}

func TestSTKPush_Success(t *testing.T) {
	var pushPayload stkPushPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v1/generate":
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "key", user)
			assert.Equal(t, "secret", pass)
			json.NewEncoder(w).Encode(map[string]string{
				"access_token": "token-123",
				"expires_in":   "3599",
			})
		case "/mpesa/stkpush/v1/processrequest":
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&pushPayload))
			json.NewEncoder(w).Encode(STKPushResponse{
				MerchantRequestID: "merchant-1",
				CheckoutRequestID: "checkout-1",
				ResponseCode:      "0",
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ack, err := client.STKPush(context.Background(), STKPushRequest{
		PhoneNumber: "254712345678",
		Amount:      decimal.NewFromInt(3000),
		Reference:   "MPE000000000001",
		Description: "Monthly membership",
	})
	require.NoError(t, err)

	assert.True(t, ack.Accepted())
	assert.Equal(t, "checkout-1", ack.CheckoutRequestID)

	assert.Equal(t, "174379", pushPayload.BusinessShortCode)
	assert.Equal(t, "174379", pushPayload.PartyB)
	assert.Equal(t, "254712345678", pushPayload.PartyA)
	assert.Equal(t, "CustomerPayBillOnline", pushPayload.TransactionType)
	assert.Equal(t, "3000", pushPayload.Amount)
	assert.Equal(t, "20260829101500", pushPayload.Timestamp)

	wantPassword := base64.StdEncoding.EncodeToString([]byte("174379" + "passkey" + "20260829101500"))
	assert.Equal(t, wantPassword, pushPayload.Password)
}

func TestSTKPush_TokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessage":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.STKPush(context.Background(), STKPushRequest{
		PhoneNumber: "254712345678",
		Amount:      decimal.NewFromInt(100),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeGatewayAuthFailed, appErr.Code)
}

func TestSTKPush_PushRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "token-123"})
			return
		}
		http.Error(w, `{"errorMessage":"Invalid Amount"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.STKPush(context.Background(), STKPushRequest{
		PhoneNumber: "254712345678",
		Amount:      decimal.NewFromInt(100),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeGatewayRequestFailed, appErr.Code)
}

func TestSTKPush_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "token-123"})
			return
		}
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.STKPush(context.Background(), STKPushRequest{
		PhoneNumber: "254712345678",
		Amount:      decimal.NewFromInt(100),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeGatewayRequestFailed, appErr.Code)
}

func TestCallbackMetadata(t *testing.T) {
	raw := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "merchant-1",
				"CheckoutRequestID": "checkout-1",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully.",
				"CallbackMetadata": {
					"Item": [
						{"Name": "Amount", "Value": 3000.0},
						{"Name": "MpesaReceiptNumber", "Value": "QK12XYZ789"},
						{"Name": "TransactionDate", "Value": 20260829101500},
						{"Name": "PhoneNumber", "Value": 254712345678}
					]
				}
			}
		}
	}`

	var env CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	cb := env.Body.StkCallback
	assert.True(t, cb.Success())

	meta := cb.Metadata()
	assert.True(t, meta.Amount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "QK12XYZ789", meta.ReceiptNumber)
	assert.EqualValues(t, 20260829101500, meta.TransactionDate)
	assert.Equal(t, "254712345678", meta.PhoneNumber)
}

func TestCallbackFailureHasNoMetadata(t *testing.T) {
	raw := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "merchant-1",
				"CheckoutRequestID": "checkout-1",
				"ResultCode": 1032,
				"ResultDesc": "Request cancelled by user"
			}
		}
	}`

	var env CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	cb := env.Body.StkCallback
	assert.False(t, cb.Success())

	meta := cb.Metadata()
	assert.True(t, meta.Amount.IsZero())
	assert.Empty(t, meta.ReceiptNumber)
}
