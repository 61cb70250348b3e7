package mpesa

import (
	"github.com/shopspring/decimal"
)

// STKPushRequest is the caller-facing input for a push payment.
type STKPushRequest struct {
	PhoneNumber string
	Amount      decimal.Decimal
	Reference   string
	Description string
}

// stkPushPayload is the Daraja wire format for /mpesa/stkpush/v1/processrequest.
type stkPushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// STKPushResponse is the provider's immediate acknowledgement. The actual
// payment result arrives later on the callback endpoint.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// Accepted reports whether the provider accepted the push request.
func (r *STKPushResponse) Accepted() bool {
	return r.ResponseCode == "0"
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// CallbackEnvelope is the fixed JSON envelope Daraja posts to the callback URL.
type CallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string           `json:"MerchantRequestID"`
	CheckoutRequestID string           `json:"CheckoutRequestID"`
	ResultCode        int              `json:"ResultCode"`
	ResultDesc        string           `json:"ResultDesc"`
	CallbackMetadata  CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

type MetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// Success reports whether the provider settled the payment.
func (c *StkCallback) Success() bool {
	return c.ResultCode == 0
}

// MetadataFields are the settlement details present on a success callback.
type MetadataFields struct {
	Amount          decimal.Decimal
	ReceiptNumber   string
	TransactionDate int64
	PhoneNumber     string
}

// Metadata flattens the Name/Value item list into typed fields. Items the
// provider omits are left zero.
func (c *StkCallback) Metadata() MetadataFields {
	var m MetadataFields
	for _, item := range c.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			switch v := item.Value.(type) {
			case float64:
				m.Amount = decimal.NewFromFloat(v)
			case string:
				if d, err := decimal.NewFromString(v); err == nil {
					m.Amount = d
				}
			}
		case "MpesaReceiptNumber":
			if v, ok := item.Value.(string); ok {
				m.ReceiptNumber = v
			}
		case "TransactionDate":
			switch v := item.Value.(type) {
			case float64:
				m.TransactionDate = int64(v)
			case int64:
				m.TransactionDate = v
			}
		case "PhoneNumber":
			switch v := item.Value.(type) {
			case float64:
				m.PhoneNumber = decimal.NewFromFloat(v).String()
			case string:
				m.PhoneNumber = v
			}
		}
	}
	return m
}
