package services

import (
	"testing"

	"gymtrack_backend/internal/dto"
	"gymtrack_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlan(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	plan, err := svc.CreatePlan(&dto.CreatePlanRequest{
		Name:         "Monthly",
		Price:        decimal.NewFromInt(3000),
		DurationDays: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, "Monthly", plan.Name)
	assert.True(t, plan.IsActive)
	assert.NotEmpty(t, plan.ID)
}

func TestCreatePlan_DuplicateName(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	req := &dto.CreatePlanRequest{Name: "Monthly", Price: decimal.NewFromInt(3000), DurationDays: 30}
	_, err := svc.CreatePlan(req)
	require.NoError(t, err)

	_, err = svc.CreatePlan(req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestCreatePlan_NegativePrice(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	_, err := svc.CreatePlan(&dto.CreatePlanRequest{
		Name:         "Broken",
		Price:        decimal.NewFromInt(-1),
		DurationDays: 30,
	})
	assert.Error(t, err)
}

func TestUpdatePlan(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	plan, err := svc.CreatePlan(&dto.CreatePlanRequest{Name: "Monthly", Price: decimal.NewFromInt(3000), DurationDays: 30})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(3500)
	inactive := false
	updated, err := svc.UpdatePlan(plan.ID, &dto.UpdatePlanRequest{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Monthly", updated.Name)
}

func TestDeletePlan_ProtectedWhileReferenced(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	plan, err := svc.CreatePlan(&dto.CreatePlanRequest{Name: "Monthly", Price: decimal.NewFromInt(3000), DurationDays: 30})
	require.NoError(t, err)

	repo.referenced[plan.ID] = true
	err = svc.DeletePlan(plan.ID)
	assert.ErrorIs(t, err, apperrors.ErrPlanInUse)

	// Still there.
	_, err = svc.GetPlan(plan.ID)
	assert.NoError(t, err)

	repo.referenced[plan.ID] = false
	require.NoError(t, svc.DeletePlan(plan.ID))

	_, err = svc.GetPlan(plan.ID)
	assert.Error(t, err)
}
