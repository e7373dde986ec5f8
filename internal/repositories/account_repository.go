package repositories

import (
	"errors"
	"time"

	"pushresume/internal/models"

	"gorm.io/gorm"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	FindByIdentity(identity, provider string) (*models.Account, error)
	FindByUser(userID string) ([]models.Account, error)
	Create(account *models.Account) error
	Update(account *models.Account) error
	Delete(id string) error

	// FindAll возвращает все аккаунты для джобы refresh-accounts.
	FindAll() ([]models.Account, error)

	// FindReapable возвращает аккаунты, у которых expires+grace уже
	// в прошлом - кандидатов на удаление cleanup-ом.
	FindReapable(now time.Time, grace time.Duration) ([]models.Account, error)

	CountAll() (int64, error)
	CountByProvider(provider string) (int64, error)
}

type AccountRepositoryImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) FindByIdentity(identity, provider string) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "identity = ? AND provider = ?", identity, provider).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByUser(userID string) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("user_id = ?", userID).Order("provider").Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepositoryImpl) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

func (r *AccountRepositoryImpl) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

func (r *AccountRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Account{}, "id = ?", id).Error
}

func (r *AccountRepositoryImpl) FindAll() ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Order("created_at").Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepositoryImpl) FindReapable(now time.Time, grace time.Duration) ([]models.Account, error) {
	var accounts []models.Account
	deadline := now.Add(-grace)
	err := r.db.Where("expires < ?", deadline).Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Count(&count).Error
	return count, err
}

func (r *AccountRepositoryImpl) CountByProvider(provider string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Where("provider = ?", provider).Count(&count).Error
	return count, err
}
