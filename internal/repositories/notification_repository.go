package repositories

import (
	"time"

	"pushresume/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	Update(notification *models.Notification) error
	Delete(id string) error

	// FindPending - неотправленные уведомления пользователя в канале,
	// в порядке постановки в очередь.
	FindPending(userID, channel string) ([]models.Notification, error)

	// FindDead - отправленные или просроченные уведомления,
	// кандидаты cleanup-notifications.
	FindDead(now time.Time) ([]models.Notification, error)

	CountAll() (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

func (r *NotificationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Notification{}, "id = ?", id).Error
}

func (r *NotificationRepositoryImpl) FindPending(userID, channel string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ? AND channel = ? AND sended = ?", userID, channel, false).
		Order("created_at").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) FindDead(now time.Time) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("sended = ? OR expires < ?", true, now).Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Count(&count).Error
	return count, err
}
