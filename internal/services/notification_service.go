package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"time"

	"pushresume/internal/config"
	"pushresume/internal/logger"
	"pushresume/internal/models"
	"pushresume/internal/repositories"
	"pushresume/internal/services/dto"
	"pushresume/pkg/apperrors"

	"gorm.io/datatypes"
)

// Ошибки подтверждения кода: бот сообщает их пользователю дословно,
// поэтому они различимы.
var (
	ErrCodeNotFound          = errors.New("confirmation code not found")
	ErrCodeExpired           = errors.New("confirmation code is expired")
	ErrSubscriptionDuplicate = errors.New("subscription already exists")
)

type NotificationService interface {
	// Channels возвращает доступные каналы уведомлений.
	Channels() []string

	// CreateConfirmation возвращает живой код подтверждения канала,
	// создавая новый, если прежний истек или отсутствует.
	CreateConfirmation(userID, channel string) (*dto.ConfirmationResponse, error)

	Subscriptions(userID string) ([]dto.SubscriptionView, error)

	// ToggleSubscription переключает подписку; неподтвержденная
	// подписка включена быть не может.
	ToggleSubscription(userID, channel string) (bool, error)

	// ConfirmSubscription - граница чат-бота: входящий код плюс адрес
	// канала создают подтвержденную подписку владельца кода.
	ConfirmSubscription(code, channel, address string) (*models.Subscription, error)

	// Enqueue ставит уведомление в очередь по каждому активному
	// каналу пользователя; без активных подписок - no-op.
	Enqueue(userID, message string, data map[string]string) error
}

type notificationService struct {
	cfg              *config.Config
	confirmationRepo repositories.ConfirmationRepository
	subscriptionRepo repositories.SubscriptionRepository
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(
	cfg *config.Config,
	confirmationRepo repositories.ConfirmationRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	notificationRepo repositories.NotificationRepository,
) NotificationService {
	return &notificationService{
		cfg:              cfg,
		confirmationRepo: confirmationRepo,
		subscriptionRepo: subscriptionRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) Channels() []string {
	return s.cfg.Notifications.Channels
}

func (s *notificationService) channelKnown(channel string) bool {
	for _, known := range s.cfg.Notifications.Channels {
		if known == channel {
			return true
		}
	}
	return false
}

func (s *notificationService) CreateConfirmation(userID, channel string) (*dto.ConfirmationResponse, error) {
	if !s.channelKnown(channel) {
		return nil, apperrors.NewNotFoundError("notifications", "Notification channel not found")
	}

	now := time.Now()

	confirmations, err := s.confirmationRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	for i := range confirmations {
		confirmation := &confirmations[i]
		if confirmation.Channel != channel {
			continue
		}
		if !confirmation.IsExpired(now) {
			return &dto.ConfirmationResponse{
				Code: confirmation.Code,
				TTL:  confirmation.SecondsLeft(now),
			}, nil
		}
		// истекший код вытесняется новым
		if err := s.confirmationRepo.Delete(confirmation.ID); err != nil {
			return nil, apperrors.StoreError(err)
		}
	}

	code, err := generateCode(s.cfg.Notifications.CodeLength)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ttl := time.Duration(s.cfg.Notifications.CodeTTL[channel]) * time.Second
	confirmation := &models.Confirmation{
		Code:    code,
		Channel: channel,
		Expires: now.Add(ttl),
		UserID:  userID,
	}
	if err := s.confirmationRepo.Create(confirmation); err != nil {
		return nil, apperrors.StoreError(err)
	}

	logger.Info("confirmation created", "user", userID, "channel", channel)
	return &dto.ConfirmationResponse{
		Code: confirmation.Code,
		TTL:  confirmation.SecondsLeft(now),
	}, nil
}

func (s *notificationService) Subscriptions(userID string) ([]dto.SubscriptionView, error) {
	subscriptions, err := s.subscriptionRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	views := make([]dto.SubscriptionView, 0, len(subscriptions))
	for _, sub := range subscriptions {
		views = append(views, dto.SubscriptionView{
			Channel:   sub.Channel,
			Enabled:   sub.Enabled,
			Confirmed: sub.Confirmed,
		})
	}
	return views, nil
}

func (s *notificationService) ToggleSubscription(userID, channel string) (bool, error) {
	subscription, err := s.subscriptionRepo.FindByUserAndChannel(userID, channel)
	if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
		return false, apperrors.NewNotFoundError("notifications", "Subscription not found")
	}
	if err != nil {
		return false, apperrors.StoreError(err)
	}

	if !subscription.Confirmed {
		return false, apperrors.NewNotConfirmedError("Channel not confirmed")
	}

	subscription.Enabled = !subscription.Enabled
	if err := s.subscriptionRepo.Update(subscription); err != nil {
		return false, apperrors.StoreError(err)
	}

	logger.Info("subscription toggled",
		"user", userID, "channel", channel, "enabled", subscription.Enabled)
	return subscription.Enabled, nil
}

func (s *notificationService) ConfirmSubscription(code, channel, address string) (*models.Subscription, error) {
	confirmation, err := s.confirmationRepo.FindByCode(code)
	if apperrors.Is(err, repositories.ErrConfirmationNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	if confirmation.Channel != channel {
		return nil, ErrCodeNotFound
	}

	if confirmation.IsExpired(time.Now()) {
		return nil, ErrCodeExpired
	}

	if _, err := s.subscriptionRepo.FindByUserAndChannel(confirmation.UserID, channel); err == nil {
		return nil, ErrSubscriptionDuplicate
	} else if !apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, apperrors.StoreError(err)
	}

	subscription := &models.Subscription{
		Channel:   channel,
		Address:   address,
		Confirmed: true,
		UserID:    confirmation.UserID,
	}
	if err := s.subscriptionRepo.Create(subscription); err != nil {
		return nil, apperrors.StoreError(err)
	}

	// код одноразовый
	if err := s.confirmationRepo.Delete(confirmation.ID); err != nil {
		return nil, apperrors.StoreError(err)
	}

	logger.Info("subscription created",
		"user", confirmation.UserID, "channel", channel)
	return subscription, nil
}

func (s *notificationService) Enqueue(userID, message string, data map[string]string) error {
	subscriptions, err := s.subscriptionRepo.FindByUser(userID)
	if err != nil {
		return err
	}

	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}

	for _, subscription := range subscriptions {
		if !subscription.Active() {
			continue
		}

		notification := &models.Notification{
			Channel: subscription.Channel,
			Message: message,
			Data:    payload,
			Expires: time.Now().Add(s.cfg.NotificationTTL()),
			UserID:  userID,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			return err
		}
	}

	return nil
}

// generateCode возвращает случайный числовой код заданной длины.
func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
