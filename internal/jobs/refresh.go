package jobs

import (
	"context"
	"time"

	"pushresume/internal/logger"
	"pushresume/internal/models"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"
	"pushresume/internal/services"
)

// RefreshJob ротирует токены всех аккаунтов. Неудачный refresh
// оставляет аккаунт несвежим до следующего цикла; окончательно его
// приберет cleanup после grace-периода.
type RefreshJob struct {
	registry    *providers.Registry
	accountRepo repositories.AccountRepository
	notifier    services.NotificationService
}

func NewRefreshJob(
	registry *providers.Registry,
	accountRepo repositories.AccountRepository,
	notifier services.NotificationService,
) *RefreshJob {
	return &RefreshJob{
		registry:    registry,
		accountRepo: accountRepo,
		notifier:    notifier,
	}
}

func (j *RefreshJob) Run(ctx context.Context) (Result, error) {
	var result Result

	accounts, err := j.accountRepo.FindAll()
	if err != nil {
		return result, err
	}

	for i := range accounts {
		result.Total++
		if err := j.refreshOne(ctx, &accounts[i]); err != nil {
			result.Failed++
			if providers.IsKind(err, providers.KindToken) {
				logger.Warn("reauth failed",
					"identity", accounts[i].Identity,
					"provider", accounts[i].Provider,
					"error", err.Error())
			} else {
				logger.Error("reauth failed unexpectedly",
					"identity", accounts[i].Identity,
					"provider", accounts[i].Provider,
					"error", err.Error())
			}
			continue
		}
		result.Success++
		logger.Info("reauth success",
			"identity", accounts[i].Identity, "provider", accounts[i].Provider)
	}

	return result, nil
}

func (j *RefreshJob) refreshOne(ctx context.Context, account *models.Account) error {
	provider, ok := j.registry.Get(account.Provider)
	if !ok {
		return &providers.Error{
			Provider: account.Provider,
			Kind:     providers.KindToken,
			Err:      errProviderGone,
		}
	}

	token, err := provider.Tokenize(ctx, account.Refresh, true)
	if err != nil {
		return err
	}

	account.Access = token.Access
	account.Refresh = token.Refresh
	account.Expires = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	if err := j.accountRepo.Update(account); err != nil {
		return err
	}

	// доставка только при наличии активной подписки; сбой очереди
	// уведомлений не отменяет успешный refresh
	if err := j.notifier.Enqueue(account.UserID, "Account refresh success", map[string]string{
		"provider": account.Provider,
	}); err != nil {
		logger.Error("refresh notification enqueue failed",
			"user", account.UserID, "error", err.Error())
	}

	return nil
}
