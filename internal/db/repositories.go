package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Medicines  *MedicineRepository
	VoiceNotes *VoiceNoteRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Medicines:  NewMedicineRepository(database),
		VoiceNotes: NewVoiceNoteRepository(database),
	}
}
