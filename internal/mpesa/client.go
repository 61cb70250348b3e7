// Package mpesa wraps the Safaricom Daraja STK push protocol: an OAuth
// client-credentials exchange followed by the push-payment request. The
// client is fail-fast and never retries; callers decide what a failure means.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gymtrack_backend/internal/config"
	"gymtrack_backend/pkg/apperrors"
)

type Client struct {
	BaseURL string

	cfg        config.MpesaConfig
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg config.MpesaConfig) *Client {
	return &Client{
		BaseURL: cfg.BaseURL(),
		cfg:     cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		now: time.Now,
	}
}

// accessToken performs the basic-auth credential exchange.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	url := c.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperrors.ErrGatewayAuth(err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.ErrGatewayAuth(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.ErrGatewayAuth(fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", apperrors.ErrGatewayAuth(fmt.Errorf("invalid token response: %w", err))
	}
	if token.AccessToken == "" {
		return "", apperrors.ErrGatewayAuth(fmt.Errorf("token response missing access_token"))
	}

	return token.AccessToken, nil
}

// password derives the Daraja request password for the given timestamp.
func (c *Client) password(timestamp string) string {
	plain := c.cfg.Shortcode + c.cfg.Passkey + timestamp
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

// STKPush submits a push-payment request and returns the provider's raw
// acknowledgement. A non-zero ResponseCode in the acknowledgement is NOT an
// error here; the orchestrator interprets it.
func (c *Client) STKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := c.now().Format("20060102150405")

	payload := stkPushPayload{
		BusinessShortCode: c.cfg.Shortcode,
		Password:          c.password(timestamp),
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            req.Amount.Round(0).String(),
		PartyA:            req.PhoneNumber,
		PartyB:            c.cfg.Shortcode,
		PhoneNumber:       req.PhoneNumber,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  req.Reference,
		TransactionDesc:   req.Description,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.ErrGatewayRequest(err, "")
	}

	url := c.BaseURL + "/mpesa/stkpush/v1/processrequest"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.ErrGatewayRequest(err, "")
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.ErrGatewayRequest(err, "")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrGatewayRequest(
			fmt.Errorf("stk push returned %d", resp.StatusCode),
			string(respBody),
		)
	}

	var ack STKPushResponse
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return nil, apperrors.ErrGatewayRequest(fmt.Errorf("invalid stk push response: %w", err), "")
	}

	return &ack, nil
}
