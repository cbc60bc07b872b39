package db

import (
	"errors"

	"github.com/ternovka/medbell/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, bool, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	return user, true, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, bool, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	return user, true, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) ListPatientsByCaregiver(caregiverID uint) ([]models.User, error) {
	patients := make([]models.User, 0)
	if err := repo.database.
		Where("role = ? AND caregiver_id = ?", models.RolePatient, caregiverID).
		Order("created_at ASC, id ASC").
		Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}
