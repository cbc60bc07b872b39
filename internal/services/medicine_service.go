package services

import (
	"errors"
	"log"
	"strings"

	"github.com/ternovka/medbell/internal/models"
)

var (
	ErrPlanLimitExceeded    = errors.New("plan limit reached")
	ErrNotMedicineOwner     = errors.New("not medicine owner")
	ErrInvalidMedicineName  = errors.New("medicine name required")
	ErrInvalidDoseTime      = errors.New("invalid dose time")
	ErrInvalidStock         = errors.New("stock must not be negative")
	ErrInstructionsConflict = errors.New("text and voice instructions are mutually exclusive")
)

// DefaultStock is used when a caregiver does not say how many doses the
// bottle holds.
const DefaultStock = 30

type MedicineRepository interface {
	ListByPatient(patientID uint) ([]models.Medicine, error)
	ListByCaregiver(caregiverID uint) ([]models.Medicine, error)
	CountByCaregiver(caregiverID uint) (int64, error)
	FindByID(medicineID uint) (models.Medicine, bool, error)
	Create(medicine *models.Medicine) error
	Save(medicine *models.Medicine) error
	Delete(medicineID uint) error
}

type MedicineVoiceNoteStore interface {
	Delete(ref string) error
}

type MedicineInput struct {
	PatientID     uint
	Name          string
	DoseTime      string
	Stock         *int
	Instructions  string
	VoiceNoteRef  string
	ScheduleKind  string
	ScheduleDays  []int
	ScheduleDates []string
}

// MedicineService owns the medicine lifecycle: plan-gated admission,
// caregiver-only mutation, and deletion including voice note cleanup.
type MedicineService struct {
	medicines MedicineRepository
	voices    MedicineVoiceNoteStore
}

func NewMedicineService(medicines MedicineRepository, voices MedicineVoiceNoteStore) *MedicineService {
	return &MedicineService{
		medicines: medicines,
		voices:    voices,
	}
}

// CreateMedicine admits a new medicine for one of the caregiver's patients.
// The plan limit is checked against the caregiver's total existing medicine
// count before anything is written; on ErrPlanLimitExceeded no record exists.
func (service *MedicineService) CreateMedicine(caregiver *models.User, input MedicineInput) (models.Medicine, error) {
	medicine := models.Medicine{
		PatientID:   input.PatientID,
		CaregiverID: caregiver.ID,
		TakenDates:  []string{},
	}
	if err := applyMedicineInput(&medicine, input); err != nil {
		return models.Medicine{}, err
	}

	count, err := service.medicines.CountByCaregiver(caregiver.ID)
	if err != nil {
		return models.Medicine{}, err
	}
	if !CanAddMedicine(caregiver.Plan, int(count)) {
		return models.Medicine{}, ErrPlanLimitExceeded
	}

	if err := service.medicines.Create(&medicine); err != nil {
		return models.Medicine{}, err
	}
	return medicine, nil
}

// UpdateMedicine mutates name, dose time, stock, instructions or schedule.
// Only the owning caregiver may mutate, and the taken history is preserved.
func (service *MedicineService) UpdateMedicine(caregiverID uint, medicineID uint, input MedicineInput) (models.Medicine, error) {
	medicine, found, err := service.medicines.FindByID(medicineID)
	if err != nil {
		return models.Medicine{}, err
	}
	if !found {
		return models.Medicine{}, ErrMedicineNotFound
	}
	if medicine.CaregiverID != caregiverID {
		return models.Medicine{}, ErrNotMedicineOwner
	}

	previousVoiceRef := medicine.VoiceNoteRef
	if err := applyMedicineInput(&medicine, input); err != nil {
		return models.Medicine{}, err
	}
	if err := service.medicines.Save(&medicine); err != nil {
		return models.Medicine{}, err
	}

	if previousVoiceRef != "" && previousVoiceRef != medicine.VoiceNoteRef {
		service.releaseVoiceNote(previousVoiceRef)
	}
	return medicine, nil
}

// DeleteMedicine removes the record and releases any referenced voice note.
func (service *MedicineService) DeleteMedicine(caregiverID uint, medicineID uint) error {
	medicine, found, err := service.medicines.FindByID(medicineID)
	if err != nil {
		return err
	}
	if !found {
		return ErrMedicineNotFound
	}
	if medicine.CaregiverID != caregiverID {
		return ErrNotMedicineOwner
	}

	if err := service.medicines.Delete(medicineID); err != nil {
		return err
	}
	if medicine.VoiceNoteRef != "" {
		service.releaseVoiceNote(medicine.VoiceNoteRef)
	}
	return nil
}

func (service *MedicineService) ListForCaregiver(caregiverID uint) ([]models.Medicine, error) {
	return service.medicines.ListByCaregiver(caregiverID)
}

func (service *MedicineService) ListForPatient(patientID uint) ([]models.Medicine, error) {
	return service.medicines.ListByPatient(patientID)
}

func (service *MedicineService) releaseVoiceNote(ref string) {
	if err := service.voices.Delete(ref); err != nil {
		// The medicine row is already gone; an orphaned blob is not worth
		// failing the caller over.
		log.Printf("medicines: release voice note %s failed: %v", ref, err)
	}
}

func applyMedicineInput(medicine *models.Medicine, input MedicineInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrInvalidMedicineName
	}
	if !ValidDoseTime(input.DoseTime) {
		return ErrInvalidDoseTime
	}

	instructions := strings.TrimSpace(input.Instructions)
	if instructions != "" && input.VoiceNoteRef != "" {
		return ErrInstructionsConflict
	}

	schedule, err := ParseSchedule(input.ScheduleKind, input.ScheduleDays, input.ScheduleDates)
	if err != nil {
		return err
	}

	stock := DefaultStock
	if input.Stock != nil {
		if *input.Stock < 0 {
			return ErrInvalidStock
		}
		stock = *input.Stock
	}

	medicine.Name = name
	medicine.DoseTime = input.DoseTime
	medicine.Stock = stock
	medicine.Instructions = instructions
	medicine.VoiceNoteRef = input.VoiceNoteRef
	medicine.ScheduleKind = schedule.Kind
	medicine.ScheduleDays = schedule.Weekdays
	medicine.ScheduleDates = schedule.Dates
	return nil
}
