package repositories

import (
	"errors"

	"gymtrack_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("plan not found")

type PlanRepository interface {
	Create(plan *models.Plan) error
	FindByID(id string) (*models.Plan, error)
	FindByName(name string) (*models.Plan, error)
	FindAll(activeOnly bool) ([]models.Plan, error)
	Update(plan *models.Plan) error
	Delete(id string) error
	// IsReferenced reports whether any subscription or payment points at the
	// plan. Referenced plans must not be deleted.
	IsReferenced(id string) (bool, error)
}

type PlanRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) Create(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepositoryImpl) FindByID(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindByName(name string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.First(&plan, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindAll(activeOnly bool) ([]models.Plan, error) {
	var plans []models.Plan
	query := r.db.Order("price ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepositoryImpl) Update(plan *models.Plan) error {
	return r.db.Save(plan).Error
}

func (r *PlanRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepositoryImpl) IsReferenced(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Subscription{}).Where("plan_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&models.Payment{}).Where("plan_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
