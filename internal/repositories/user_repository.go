package repositories

import (
	"errors"

	"pushresume/internal/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	Create(user *models.User) error
	Delete(id string) error

	// FindOrphans возвращает пользователей без аккаунтов и резюме -
	// кандидатов на удаление джобой cleanup-users.
	FindOrphans() ([]models.User, error)

	CountAll() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Accounts").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *UserRepositoryImpl) FindOrphans() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("NOT EXISTS (SELECT 1 FROM accounts WHERE accounts.user_id = users.id)").
		Where("NOT EXISTS (SELECT 1 FROM resumes WHERE resumes.user_id = users.id)").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
