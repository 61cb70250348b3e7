package dto

type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=100"`
	Role   *string `json:"role" validate:"omitempty,is-user-role"`
	Status *string `json:"status" validate:"omitempty,oneof=pending active suspended"`
}
