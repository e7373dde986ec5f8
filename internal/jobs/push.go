package jobs

import (
	"context"
	"errors"

	"pushresume/internal/logger"
	"pushresume/internal/models"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"
	"pushresume/internal/services"
)

var errProviderGone = errors.New("provider not configured")

// PushJob переопубликовывает все резюме с enabled=true. Отказ
// провайдера со статусом 400/403 необратим: резюме автоматически
// выключается, чтобы не долбить площадку заведомо отвергаемым push-ем.
type PushJob struct {
	registry   *providers.Registry
	resumeRepo repositories.ResumeRepository
	notifier   services.NotificationService
}

func NewPushJob(
	registry *providers.Registry,
	resumeRepo repositories.ResumeRepository,
	notifier services.NotificationService,
) *PushJob {
	return &PushJob{
		registry:   registry,
		resumeRepo: resumeRepo,
		notifier:   notifier,
	}
}

func (j *PushJob) Run(ctx context.Context) (Result, error) {
	var result Result

	resumes, err := j.resumeRepo.FindEnabled()
	if err != nil {
		return result, err
	}

	for i := range resumes {
		result.Total++
		if err := j.pushOne(ctx, &resumes[i]); err != nil {
			result.Failed++
			continue
		}
		result.Success++
		logger.Info("push success", "identity", resumes[i].Identity)
	}

	return result, nil
}

func (j *PushJob) pushOne(ctx context.Context, resume *models.Resume) error {
	if resume.Account == nil {
		logger.Error("push failed: resume without account", "identity", resume.Identity)
		return errProviderGone
	}

	provider, ok := j.registry.Get(resume.Account.Provider)
	if !ok {
		logger.Warn("push failed: provider not configured",
			"identity", resume.Identity, "provider", resume.Account.Provider)
		return errProviderGone
	}

	if err := provider.Push(ctx, resume.Account.Access, resume.Identity); err != nil {
		provErr, isProvider := providers.AsError(err)
		if isProvider && provErr.Permanent() {
			// площадка не примет это резюме без действий пользователя
			resume.Enabled = false
			if updateErr := j.resumeRepo.Update(resume); updateErr != nil {
				logger.Error("push auto-disable failed",
					"identity", resume.Identity, "error", updateErr.Error())
			} else {
				logger.Warn("push rejected, resume disabled",
					"identity", resume.Identity, "status", provErr.Status)
			}
			return err
		}

		if isProvider {
			logger.Warn("push failed",
				"identity", resume.Identity, "error", err.Error())
		} else {
			logger.Error("push failed unexpectedly",
				"identity", resume.Identity, "error", err.Error())
		}
		return err
	}

	if err := j.notifier.Enqueue(resume.UserID, "Resume push success", map[string]string{
		"provider": resume.Account.Provider,
		"identity": resume.Identity,
	}); err != nil {
		logger.Error("push notification enqueue failed",
			"user", resume.UserID, "error", err.Error())
	}

	return nil
}
