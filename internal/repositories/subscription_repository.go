package repositories

import (
	"errors"
	"time"

	"gymtrack_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	FindByID(id string) (*models.Subscription, error)
	FindBySubscriptionID(subscriptionID string) (*models.Subscription, error)
	FindByMember(memberID string) ([]models.Subscription, error)
	FindActiveByMember(memberID string, now time.Time) (*models.Subscription, error)
	FindAll() ([]models.Subscription, error)
	Update(sub *models.Subscription) error
	Cancel(id string) error
	// MarkExpired flips every active subscription whose end date has passed
	// and returns how many rows were touched.
	MarkExpired(now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindByID(id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindBySubscriptionID(subscriptionID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.First(&sub, "subscription_id = ?", subscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByMember(memberID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.Where("member_id = ?", memberID).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionRepositoryImpl) FindActiveByMember(memberID string, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.
		Where("member_id = ? AND status = ? AND end_date > ?", memberID, models.SubscriptionStatusActive, now).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindAll() ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionRepositoryImpl) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *SubscriptionRepositoryImpl) Cancel(id string) error {
	result := r.db.Model(&models.Subscription{}).
		Where("id = ?", id).
		Update("status", models.SubscriptionStatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("status = ? AND end_date <= ?", models.SubscriptionStatusActive, now).
		Update("status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}
