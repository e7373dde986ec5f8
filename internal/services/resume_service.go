package services

import (
	"context"

	"pushresume/internal/logger"
	"pushresume/internal/models"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"
	"pushresume/internal/services/dto"
	"pushresume/pkg/apperrors"

	"gorm.io/gorm"
)

type ResumeService interface {
	// Reconcile сливает выдачу провайдеров с локальными записями по
	// всем аккаунтам пользователя. Отказ одного провайдера не рушит
	// остальных: он попадает в Errors результата. Все изменения
	// фиксируются одной транзакцией в конце.
	Reconcile(ctx context.Context, userID string) (*dto.ReconcileResult, error)

	// Toggle переключает автообновление резюме пользователя.
	Toggle(userID, identity string) (bool, error)
}

type resumeService struct {
	db          *gorm.DB
	registry    *providers.Registry
	resumeRepo  repositories.ResumeRepository
	accountRepo repositories.AccountRepository
}

func NewResumeService(
	db *gorm.DB,
	registry *providers.Registry,
	resumeRepo repositories.ResumeRepository,
	accountRepo repositories.AccountRepository,
) ResumeService {
	return &resumeService{
		db:          db,
		registry:    registry,
		resumeRepo:  resumeRepo,
		accountRepo: accountRepo,
	}
}

// fetched - выдача одного аккаунта, ожидающая слияния.
type fetched struct {
	account models.Account
	items   []providers.ResumeInfo
}

func (s *resumeService) Reconcile(ctx context.Context, userID string) (*dto.ReconcileResult, error) {
	accounts, err := s.accountRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	result := &dto.ReconcileResult{
		Providers: make(map[string][]dto.ResumeView),
		Errors:    make(map[string]string),
	}

	var pending []fetched
	for _, account := range accounts {
		provider, ok := s.registry.Get(account.Provider)
		if !ok {
			// провайдер убран из конфигурации, аккаунт доживает до cleanup
			logger.Warn("provider not configured", "provider", account.Provider)
			result.Errors[account.Provider] = "provider not configured"
			continue
		}

		items, err := provider.Fetch(ctx, account.Access)
		if err != nil {
			logger.Error("reconcile fetch failed",
				"provider", account.Provider, "user", userID, "error", err.Error())
			result.Errors[account.Provider] = "provider error"
			continue
		}

		pending = append(pending, fetched{account: account, items: items})
	}

	// одна транзакция на весь проход: сбой персистентности откатывает
	// слияние целиком, частичного коммита не видно
	err = s.db.Transaction(func(tx *gorm.DB) error {
		resumeRepo := repositories.NewResumeRepository(tx)

		for _, batch := range pending {
			views := make([]dto.ResumeView, 0, len(batch.items))

			for _, item := range batch.items {
				enabled, err := s.merge(resumeRepo, &batch.account, userID, item)
				if err != nil {
					return err
				}

				views = append(views, dto.ResumeView{
					Identity:  item.Identity,
					Title:     item.Title,
					Name:      item.Name,
					Published: item.Published,
					Link:      item.Link,
					Enabled:   enabled,
				})
			}

			result.Providers[batch.account.Provider] = append(
				result.Providers[batch.account.Provider], views...)
		}

		return nil
	})
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

// merge - правило слияния одного резюме: отсутствующее создается
// выключенным, существующее обновляет имя и перепривязывается к
// текущему пользователю (last writer wins).
func (s *resumeService) merge(repo repositories.ResumeRepository, account *models.Account, userID string, item providers.ResumeInfo) (bool, error) {
	resume, err := repo.FindByIdentity(item.Identity)
	if apperrors.Is(err, repositories.ErrResumeNotFound) {
		resume = &models.Resume{
			Identity:  item.Identity,
			Name:      item.Title,
			Enabled:   false,
			UserID:    userID,
			AccountID: account.ID,
		}
		if err := repo.Create(resume); err != nil {
			return false, err
		}
		logger.Info("resume created", "identity", item.Identity, "user", userID)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	resume.Name = item.Title
	resume.UserID = userID
	resume.AccountID = account.ID
	if err := repo.Update(resume); err != nil {
		return false, err
	}

	return resume.Enabled, nil
}

func (s *resumeService) Toggle(userID, identity string) (bool, error) {
	resume, err := s.resumeRepo.FindByIdentityAndUser(identity, userID)
	if apperrors.Is(err, repositories.ErrResumeNotFound) {
		return false, apperrors.NewNotFoundError("resume", "Resume not found")
	}
	if err != nil {
		return false, apperrors.StoreError(err)
	}

	resume.Enabled = !resume.Enabled
	if err := s.resumeRepo.Update(resume); err != nil {
		return false, apperrors.StoreError(err)
	}

	logger.Info("resume toggled", "identity", identity, "enabled", resume.Enabled)
	return resume.Enabled, nil
}
