package db

import (
	"errors"

	"github.com/ternovka/medbell/internal/models"
	"gorm.io/gorm"
)

type MedicineRepository struct {
	database *gorm.DB
}

func NewMedicineRepository(database *gorm.DB) *MedicineRepository {
	return &MedicineRepository{database: database}
}

// ListByPatient keeps stable insertion order; alert selection depends on it.
func (repo *MedicineRepository) ListByPatient(patientID uint) ([]models.Medicine, error) {
	medicines := make([]models.Medicine, 0)
	if err := repo.database.
		Where("patient_id = ?", patientID).
		Order("created_at ASC, id ASC").
		Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (repo *MedicineRepository) ListByCaregiver(caregiverID uint) ([]models.Medicine, error) {
	medicines := make([]models.Medicine, 0)
	if err := repo.database.
		Where("caregiver_id = ?", caregiverID).
		Order("created_at ASC, id ASC").
		Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (repo *MedicineRepository) CountByCaregiver(caregiverID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Medicine{}).
		Where("caregiver_id = ?", caregiverID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *MedicineRepository) FindByID(medicineID uint) (models.Medicine, bool, error) {
	var medicine models.Medicine
	if err := repo.database.First(&medicine, medicineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Medicine{}, false, nil
		}
		return models.Medicine{}, false, err
	}
	return medicine, true, nil
}

func (repo *MedicineRepository) Create(medicine *models.Medicine) error {
	return repo.database.Create(medicine).Error
}

func (repo *MedicineRepository) Save(medicine *models.Medicine) error {
	return repo.database.Save(medicine).Error
}

func (repo *MedicineRepository) Delete(medicineID uint) error {
	return repo.database.Delete(&models.Medicine{}, medicineID).Error
}
