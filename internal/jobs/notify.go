package jobs

import (
	"context"
	"time"

	"pushresume/internal/logger"
	"pushresume/internal/notify"
	"pushresume/internal/repositories"

	"golang.org/x/time/rate"
)

// NotifyJob доставляет очередь уведомлений по активным подпискам.
// Доставки темпируются общим rate.Limiter, чтобы не превышать лимиты
// транспорта. Неотправленное уведомление остается в очереди до
// следующего цикла или до истечения своего срока.
type NotifyJob struct {
	subscriptionRepo repositories.SubscriptionRepository
	notificationRepo repositories.NotificationRepository
	transports       notify.Transports
	limiter          *rate.Limiter
}

func NewNotifyJob(
	subscriptionRepo repositories.SubscriptionRepository,
	notificationRepo repositories.NotificationRepository,
	transports notify.Transports,
	perSecond float64,
) *NotifyJob {
	return &NotifyJob{
		subscriptionRepo: subscriptionRepo,
		notificationRepo: notificationRepo,
		transports:       transports,
		limiter:          rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (j *NotifyJob) Run(ctx context.Context) (Result, error) {
	var result Result

	subscriptions, err := j.subscriptionRepo.FindActive()
	if err != nil {
		return result, err
	}

	now := time.Now()

	for _, subscription := range subscriptions {
		transport, ok := j.transports[subscription.Channel]
		if !ok {
			logger.Error("notify: no transport for channel", "channel", subscription.Channel)
			continue
		}

		pending, err := j.notificationRepo.FindPending(subscription.UserID, subscription.Channel)
		if err != nil {
			logger.Error("notify: load pending failed",
				"user", subscription.UserID, "error", err.Error())
			continue
		}

		for i := range pending {
			notification := &pending[i]
			result.Total++

			// просроченное не доставляется и выбывает из очереди
			if notification.IsExpired(now) {
				result.Skipped++
				if err := j.notificationRepo.Delete(notification.ID); err != nil {
					logger.Error("notify: drop expired failed",
						"notification", notification.ID, "error", err.Error())
				}
				continue
			}

			if err := j.limiter.Wait(ctx); err != nil {
				return result, err
			}

			if err := transport.Send(ctx, subscription.Address, notification.Message); err != nil {
				result.Failed++
				logger.Warn("notify: send failed",
					"user", subscription.UserID,
					"channel", subscription.Channel,
					"error", err.Error())
				continue
			}

			notification.Sended = true
			if err := j.notificationRepo.Update(notification); err != nil {
				result.Failed++
				logger.Error("notify: mark sended failed",
					"notification", notification.ID, "error", err.Error())
				continue
			}
			result.Success++
		}
	}

	return result, nil
}
