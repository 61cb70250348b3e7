package services

import (
	"time"

	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/repositories"
	"gymtrack_backend/pkg/apperrors"
)

type SubscriptionService interface {
	ListMemberSubscriptions(memberID string) ([]models.Subscription, error)
	GetActiveSubscription(memberID string) (*models.Subscription, error)
	ListSubscriptions() ([]models.Subscription, error)
	CancelSubscription(id string) error
	// ExpireOverdue marks active subscriptions past their end date as
	// expired. The background worker calls this on a ticker.
	ExpireOverdue() (int64, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo}
}

func (s *subscriptionService) ListMemberSubscriptions(memberID string) ([]models.Subscription, error) {
	subs, err := s.subscriptionRepo.FindByMember(memberID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *subscriptionService) GetActiveSubscription(memberID string) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.FindActiveByMember(memberID, time.Now())
	if err != nil {
		if err == repositories.ErrSubscriptionNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *subscriptionService) ListSubscriptions() ([]models.Subscription, error) {
	subs, err := s.subscriptionRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *subscriptionService) CancelSubscription(id string) error {
	if err := s.subscriptionRepo.Cancel(id); err != nil {
		if err == repositories.ErrSubscriptionNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.Info("subscription cancelled", "subscription_id", id)
	return nil
}

func (s *subscriptionService) ExpireOverdue() (int64, error) {
	return s.subscriptionRepo.MarkExpired(time.Now())
}
