package validator

import (
	"testing"

	"gymtrack_backend/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_InitiatePaymentRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     dto.InitiatePaymentRequest
		wantErr string // failing field, empty means valid
	}{
		{
			name: "valid cash",
			req: dto.InitiatePaymentRequest{
				MemberID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
				PlanID:   "550e8400-e29b-41d4-a716-446655440000",
				Method:   "Cash",
			},
		},
		{
			name: "valid mpesa",
			req: dto.InitiatePaymentRequest{
				MemberID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
				PlanID:      "550e8400-e29b-41d4-a716-446655440000",
				Method:      "M-Pesa",
				PhoneNumber: "254712345678",
			},
		},
		{
			name: "mpesa without phone",
			req: dto.InitiatePaymentRequest{
				MemberID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
				PlanID:   "550e8400-e29b-41d4-a716-446655440000",
				Method:   "M-Pesa",
			},
			wantErr: "phone_number",
		},
		{
			name: "unknown method",
			req: dto.InitiatePaymentRequest{
				MemberID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
				PlanID:   "550e8400-e29b-41d4-a716-446655440000",
				Method:   "Voucher",
			},
			wantErr: "method",
		},
		{
			name: "bad phone",
			req: dto.InitiatePaymentRequest{
				MemberID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
				PlanID:      "550e8400-e29b-41d4-a716-446655440000",
				Method:      "M-Pesa",
				PhoneNumber: "07-1234-5678",
			},
			wantErr: "phone_number",
		},
		{
			name: "missing member",
			req: dto.InitiatePaymentRequest{
				PlanID: "550e8400-e29b-41d4-a716-446655440000",
				Method: "Cash",
			},
			wantErr: "member_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			vErr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Contains(t, vErr.Errors, tt.wantErr)
		})
	}
}

func TestValidate_MsisdnPlusPrefix(t *testing.T) {
	v := New()

	req := dto.InitiatePaymentRequest{
		MemberID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		PlanID:      "550e8400-e29b-41d4-a716-446655440000",
		Method:      "M-Pesa",
		PhoneNumber: "+254712345678",
	}
	assert.NoError(t, v.Validate(&req))
}

func TestValidate_UserRoleTag(t *testing.T) {
	v := New()

	good := "Trainer"
	assert.NoError(t, v.Validate(&dto.UpdateUserRequest{Role: &good}))

	bad := "Owner"
	err := v.Validate(&dto.UpdateUserRequest{Role: &bad})
	require.Error(t, err)
}
