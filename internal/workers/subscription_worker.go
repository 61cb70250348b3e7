// Package workers runs background maintenance loops.
package workers

import (
	"context"
	"time"

	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/services"
)

// SubscriptionWorker periodically marks active subscriptions past their end
// date as expired. Missed runs are harmless because the sweep is based on
// absolute dates, not deltas.
type SubscriptionWorker struct {
	subscriptionService services.SubscriptionService
	interval            time.Duration
}

func NewSubscriptionWorker(subscriptionService services.SubscriptionService, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{
		subscriptionService: subscriptionService,
		interval:            interval,
	}
}

// Run blocks until ctx is cancelled. Call it in a goroutine.
func (w *SubscriptionWorker) Run(ctx context.Context) {
	logger.Info("subscription expiry worker started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()
	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SubscriptionWorker) sweep() {
	count, err := w.subscriptionService.ExpireOverdue()
	if err != nil {
		logger.WorkerLog("subscription_expiry", "sweep", err)
		return
	}
	if count > 0 {
		logger.Info("subscriptions expired", "count", count)
	}
}
