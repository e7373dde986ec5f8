package repositories

import (
	"errors"

	"pushresume/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionExists   = errors.New("subscription already exists")
)

type SubscriptionRepository interface {
	FindByUserAndChannel(userID, channel string) (*models.Subscription, error)
	FindByUser(userID string) ([]models.Subscription, error)
	Create(subscription *models.Subscription) error
	Update(subscription *models.Subscription) error
	Delete(id string) error

	// FindActive - подписки enabled+confirmed, по которым джоба notify
	// доставляет уведомления.
	FindActive() ([]models.Subscription, error)

	// FindStale - неподтвержденные и выключенные подписки,
	// кандидаты cleanup-subscriptions.
	FindStale() ([]models.Subscription, error)

	CountAll() (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) FindByUserAndChannel(userID, channel string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.First(&subscription, "user_id = ? AND channel = ?", userID, channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepositoryImpl) FindByUser(userID string) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Where("user_id = ?", userID).Order("channel").Find(&subscriptions).Error
	return subscriptions, err
}

func (r *SubscriptionRepositoryImpl) Create(subscription *models.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *SubscriptionRepositoryImpl) Update(subscription *models.Subscription) error {
	return r.db.Save(subscription).Error
}

func (r *SubscriptionRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Subscription{}, "id = ?", id).Error
}

func (r *SubscriptionRepositoryImpl) FindActive() ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Where("enabled = ? AND confirmed = ?", true, true).Find(&subscriptions).Error
	return subscriptions, err
}

func (r *SubscriptionRepositoryImpl) FindStale() ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Where("enabled = ? AND confirmed = ?", false, false).Find(&subscriptions).Error
	return subscriptions, err
}

func (r *SubscriptionRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).Count(&count).Error
	return count, err
}
