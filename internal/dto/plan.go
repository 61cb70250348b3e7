package dto

import "github.com/shopspring/decimal"

type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,min=2,max=100"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	DurationDays int             `json:"duration_days" validate:"required,min=1"`
	IsActive     *bool           `json:"is_active"`
}

type UpdatePlanRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays *int             `json:"duration_days" validate:"omitempty,min=1"`
	IsActive     *bool            `json:"is_active"`
}
