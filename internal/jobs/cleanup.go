package jobs

import (
	"context"
	"time"

	"pushresume/internal/config"
	"pushresume/internal/logger"
	"pushresume/internal/repositories"
)

// CleanupJobs - тела шести cleanup-джоб. Каждый кандидат удаляется в
// собственной единице работы: сбой удаления одной строки учитывается
// в Failed и не прерывает батч.
type CleanupJobs struct {
	cfg              *config.Config
	userRepo         repositories.UserRepository
	accountRepo      repositories.AccountRepository
	resumeRepo       repositories.ResumeRepository
	confirmationRepo repositories.ConfirmationRepository
	subscriptionRepo repositories.SubscriptionRepository
	notificationRepo repositories.NotificationRepository
}

func NewCleanupJobs(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	accountRepo repositories.AccountRepository,
	resumeRepo repositories.ResumeRepository,
	confirmationRepo repositories.ConfirmationRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	notificationRepo repositories.NotificationRepository,
) *CleanupJobs {
	return &CleanupJobs{
		cfg:              cfg,
		userRepo:         userRepo,
		accountRepo:      accountRepo,
		resumeRepo:       resumeRepo,
		confirmationRepo: confirmationRepo,
		subscriptionRepo: subscriptionRepo,
		notificationRepo: notificationRepo,
	}
}

// Users удаляет пользователей без аккаунтов и без резюме.
func (c *CleanupJobs) Users(ctx context.Context) (Result, error) {
	var result Result

	users, err := c.userRepo.FindOrphans()
	if err != nil {
		return result, err
	}

	for _, user := range users {
		result.Total++
		logger.Warn("cleanup user", "user", user.ID)
		if err := c.userRepo.Delete(user.ID); err != nil {
			result.Failed++
			logger.Error("cleanup user failed", "user", user.ID, "error", err.Error())
			continue
		}
		result.Success++
	}

	return result, nil
}

// Accounts удаляет аккаунты, пережившие expires плюс grace-период без
// успешного refresh. Просроченные, но еще в grace-окне - остаются.
func (c *CleanupJobs) Accounts(ctx context.Context) (Result, error) {
	var result Result

	accounts, err := c.accountRepo.FindReapable(time.Now(), c.cfg.AccountGrace())
	if err != nil {
		return result, err
	}

	for _, account := range accounts {
		result.Total++
		logger.Warn("cleanup account",
			"identity", account.Identity, "provider", account.Provider)
		if err := c.accountRepo.Delete(account.ID); err != nil {
			result.Failed++
			logger.Error("cleanup account failed", "account", account.ID, "error", err.Error())
			continue
		}
		result.Success++
	}

	return result, nil
}

// Resumes удаляет резюме с выключенным автообновлением: политика
// агрессивная, выключить - значит забыть; следующая синхронизация
// создаст запись заново выключенной.
func (c *CleanupJobs) Resumes(ctx context.Context) (Result, error) {
	var result Result

	resumes, err := c.resumeRepo.FindDisabled()
	if err != nil {
		return result, err
	}

	for _, resume := range resumes {
		result.Total++
		logger.Warn("cleanup resume", "identity", resume.Identity)
		if err := c.resumeRepo.Delete(resume.ID); err != nil {
			result.Failed++
			logger.Error("cleanup resume failed", "resume", resume.ID, "error", err.Error())
			continue
		}
		result.Success++
	}

	return result, nil
}

// Confirmations удаляет просроченные коды подтверждения.
func (c *CleanupJobs) Confirmations(ctx context.Context) (Result, error) {
	var result Result

	confirmations, err := c.confirmationRepo.FindExpired(time.Now())
	if err != nil {
		return result, err
	}

	for _, confirmation := range confirmations {
		result.Total++
		logger.Warn("cleanup confirmation",
			"channel", confirmation.Channel, "user", confirmation.UserID)
		if err := c.confirmationRepo.Delete(confirmation.ID); err != nil {
			result.Failed++
			logger.Error("cleanup confirmation failed",
				"confirmation", confirmation.ID, "error", err.Error())
			continue
		}
		result.Success++
	}

	return result, nil
}

// Subscriptions удаляет подписки, которые так и не были подтверждены
// и не включены. Подтвержденная, но выключенная подписка остается:
// пользователь может включить ее снова без нового кода.
func (c *CleanupJobs) Subscriptions(ctx context.Context) (Result, error) {
	var result Result

	subscriptions, err := c.subscriptionRepo.FindStale()
	if err != nil {
		return result, err
	}

	for _, subscription := range subscriptions {
		result.Total++
		logger.Warn("cleanup subscription",
			"channel", subscription.Channel, "user", subscription.UserID)
		if err := c.subscriptionRepo.Delete(subscription.ID); err != nil {
			result.Failed++
			logger.Error("cleanup subscription failed",
				"subscription", subscription.ID, "error", err.Error())
			continue
		}
		result.Success++
	}

	return result, nil
}

// Notifications удаляет отправленные и просроченные уведомления.
func (c *CleanupJobs) Notifications(ctx context.Context) (Result, error) {
	var result Result

	notifications, err := c.notificationRepo.FindDead(time.Now())
	if err != nil {
		return result, err
	}

	for _, notification := range notifications {
		result.Total++
		if err := c.notificationRepo.Delete(notification.ID); err != nil {
			result.Failed++
			logger.Error("cleanup notification failed",
				"notification", notification.ID, "error", err.Error())
			continue
		}
		result.Success++
	}

	return result, nil
}
