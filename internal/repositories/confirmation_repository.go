package repositories

import (
	"errors"
	"time"

	"pushresume/internal/models"

	"gorm.io/gorm"
)

var ErrConfirmationNotFound = errors.New("confirmation not found")

type ConfirmationRepository interface {
	FindByCode(code string) (*models.Confirmation, error)
	FindByUser(userID string) ([]models.Confirmation, error)
	Create(confirmation *models.Confirmation) error
	Delete(id string) error

	// FindExpired - просроченные коды для cleanup-confirmations.
	FindExpired(now time.Time) ([]models.Confirmation, error)

	CountAll() (int64, error)
}

type ConfirmationRepositoryImpl struct {
	db *gorm.DB
}

func NewConfirmationRepository(db *gorm.DB) ConfirmationRepository {
	return &ConfirmationRepositoryImpl{db: db}
}

func (r *ConfirmationRepositoryImpl) FindByCode(code string) (*models.Confirmation, error) {
	var confirmation models.Confirmation
	err := r.db.First(&confirmation, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfirmationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (r *ConfirmationRepositoryImpl) FindByUser(userID string) ([]models.Confirmation, error) {
	var confirmations []models.Confirmation
	err := r.db.Where("user_id = ?", userID).Find(&confirmations).Error
	return confirmations, err
}

func (r *ConfirmationRepositoryImpl) Create(confirmation *models.Confirmation) error {
	return r.db.Create(confirmation).Error
}

func (r *ConfirmationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Confirmation{}, "id = ?", id).Error
}

func (r *ConfirmationRepositoryImpl) FindExpired(now time.Time) ([]models.Confirmation, error) {
	var confirmations []models.Confirmation
	err := r.db.Where("expires < ?", now).Find(&confirmations).Error
	return confirmations, err
}

func (r *ConfirmationRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Confirmation{}).Count(&count).Error
	return count, err
}
