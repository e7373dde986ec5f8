package repositories

import (
	"errors"

	"pushresume/internal/models"

	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	FindByIdentity(identity string) (*models.Resume, error)
	FindByIdentityAndUser(identity, userID string) (*models.Resume, error)
	Create(resume *models.Resume) error
	Update(resume *models.Resume) error
	Delete(id string) error

	// FindEnabled возвращает резюме с автообновлением вместе с
	// аккаунтами-владельцами - вход джобы push-resumes.
	FindEnabled() ([]models.Resume, error)

	// FindDisabled - кандидаты на удаление джобой cleanup-resumes.
	FindDisabled() ([]models.Resume, error)

	CountAll() (int64, error)
	CountByProvider(provider string) (int64, error)
}

type ResumeRepositoryImpl struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &ResumeRepositoryImpl{db: db}
}

func (r *ResumeRepositoryImpl) FindByIdentity(identity string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.First(&resume, "identity = ?", identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepositoryImpl) FindByIdentityAndUser(identity, userID string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.First(&resume, "identity = ? AND user_id = ?", identity, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepositoryImpl) Create(resume *models.Resume) error {
	return r.db.Create(resume).Error
}

func (r *ResumeRepositoryImpl) Update(resume *models.Resume) error {
	return r.db.Save(resume).Error
}

func (r *ResumeRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Resume{}, "id = ?", id).Error
}

func (r *ResumeRepositoryImpl) FindEnabled() ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.Preload("Account").Where("enabled = ?", true).Find(&resumes).Error
	return resumes, err
}

func (r *ResumeRepositoryImpl) FindDisabled() ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.Where("enabled = ?", false).Find(&resumes).Error
	return resumes, err
}

func (r *ResumeRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Resume{}).Count(&count).Error
	return count, err
}

func (r *ResumeRepositoryImpl) CountByProvider(provider string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Resume{}).
		Joins("JOIN accounts ON accounts.id = resumes.account_id").
		Where("accounts.provider = ?", provider).
		Count(&count).Error
	return count, err
}
