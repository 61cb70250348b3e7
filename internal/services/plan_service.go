package services

import (
	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/repositories"
	"gymtrack_backend/pkg/apperrors"
)

type PlanService interface {
	ListPlans(activeOnly bool) ([]models.Plan, error)
	GetPlan(id string) (*models.Plan, error)
	CreatePlan(req *dto.CreatePlanRequest) (*models.Plan, error)
	UpdatePlan(id string, req *dto.UpdatePlanRequest) (*models.Plan, error)
	// DeletePlan refuses while any subscription or payment references the
	// plan, mirroring a database PROTECT constraint.
	DeletePlan(id string) error
}

type planService struct {
	planRepo repositories.PlanRepository
}

func NewPlanService(planRepo repositories.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) ListPlans(activeOnly bool) ([]models.Plan, error) {
	plans, err := s.planRepo.FindAll(activeOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *planService) GetPlan(id string) (*models.Plan, error) {
	plan, err := s.planRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return plan, nil
}

func (s *planService) CreatePlan(req *dto.CreatePlanRequest) (*models.Plan, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.NewBadRequestError("Price must not be negative")
	}

	if _, err := s.planRepo.FindByName(req.Name); err == nil {
		return nil, apperrors.ErrConflict(nil, "plans", "A plan with this name already exists")
	}

	plan := &models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsActive:     true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("plan created", "plan_id", plan.ID, "name", plan.Name)
	return plan, nil
}

func (s *planService) UpdatePlan(id string, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.planRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.NewBadRequestError("Price must not be negative")
		}
		plan.Price = *req.Price
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Update(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *planService) DeletePlan(id string) error {
	if _, err := s.planRepo.FindByID(id); err != nil {
		return apperrors.ErrNotFound(err)
	}

	referenced, err := s.planRepo.IsReferenced(id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if referenced {
		return apperrors.ErrPlanInUse
	}

	if err := s.planRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("plan deleted", "plan_id", id)
	return nil
}
