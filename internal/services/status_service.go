package services

import (
	"encoding/json"
	"time"

	"pushresume/internal/config"
	"pushresume/internal/logger"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"
	"pushresume/internal/services/dto"
	"pushresume/pkg/apperrors"

	"github.com/go-redis/redis/v7"
)

const statusCacheKey = "cache:status"

type StatusService interface {
	// Stats возвращает статистику использования; результат кэшируется
	// в redis на время Redis.CacheTTL.
	Stats() (*dto.StatsResponse, error)
}

type statusService struct {
	cfg              *config.Config
	cache            *redis.Client
	registry         *providers.Registry
	userRepo         repositories.UserRepository
	accountRepo      repositories.AccountRepository
	resumeRepo       repositories.ResumeRepository
	confirmationRepo repositories.ConfirmationRepository
	subscriptionRepo repositories.SubscriptionRepository
	notificationRepo repositories.NotificationRepository
}

func NewStatusService(
	cfg *config.Config,
	cache *redis.Client,
	registry *providers.Registry,
	userRepo repositories.UserRepository,
	accountRepo repositories.AccountRepository,
	resumeRepo repositories.ResumeRepository,
	confirmationRepo repositories.ConfirmationRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	notificationRepo repositories.NotificationRepository,
) StatusService {
	return &statusService{
		cfg:              cfg,
		cache:            cache,
		registry:         registry,
		userRepo:         userRepo,
		accountRepo:      accountRepo,
		resumeRepo:       resumeRepo,
		confirmationRepo: confirmationRepo,
		subscriptionRepo: subscriptionRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *statusService) Stats() (*dto.StatsResponse, error) {
	if cached := s.fromCache(); cached != nil {
		return cached, nil
	}

	var counts [6]int64
	counters := []func() (int64, error){
		s.userRepo.CountAll,
		s.accountRepo.CountAll,
		s.resumeRepo.CountAll,
		s.confirmationRepo.CountAll,
		s.subscriptionRepo.CountAll,
		s.notificationRepo.CountAll,
	}
	for i, count := range counters {
		n, err := count()
		if err != nil {
			return nil, apperrors.StoreError(err)
		}
		counts[i] = n
	}

	result := &dto.StatsResponse{Providers: []dto.ProviderStats{}}
	var rows int64
	for _, n := range counts {
		rows += n
	}
	result.Health.Database = dto.DatabaseHealth{
		Current: rows,
		Max:     s.cfg.Database.MaxRows,
	}

	for _, name := range s.registry.Names() {
		accounts, err := s.accountRepo.CountByProvider(name)
		if err != nil {
			return nil, apperrors.StoreError(err)
		}
		resumes, err := s.resumeRepo.CountByProvider(name)
		if err != nil {
			return nil, apperrors.StoreError(err)
		}
		result.Providers = append(result.Providers, dto.ProviderStats{
			Name:     name,
			Accounts: accounts,
			Resumes:  resumes,
		})
	}

	s.toCache(result)
	return result, nil
}

// fromCache читает кэшированный ответ; сбой кэша - не ошибка, просто
// пересчитываем из базы.
func (s *statusService) fromCache() *dto.StatsResponse {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(statusCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("status cache read failed", "error", err.Error())
		}
		return nil
	}

	var cached dto.StatsResponse
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil
	}
	return &cached
}

func (s *statusService) toCache(result *dto.StatsResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}

	ttl := time.Duration(s.cfg.Redis.CacheTTL) * time.Second
	if err := s.cache.Set(statusCacheKey, raw, ttl).Err(); err != nil {
		logger.Warn("status cache write failed", "error", err.Error())
	}
}
