package db

import (
	"errors"

	"github.com/ternovka/medbell/internal/models"
	"github.com/ternovka/medbell/internal/security"
	"gorm.io/gorm"
)

var ErrVoiceNoteNotFound = errors.New("voice note not found")

const voiceNoteRefLength = 24

type VoiceNoteRepository struct {
	database *gorm.DB
}

func NewVoiceNoteRepository(database *gorm.DB) *VoiceNoteRepository {
	return &VoiceNoteRepository{database: database}
}

// Put stores audio bytes and returns an opaque reference for the medicine
// record to carry.
func (repo *VoiceNoteRepository) Put(data []byte, mimeType string) (string, error) {
	ref, err := security.RandomReference(voiceNoteRefLength)
	if err != nil {
		return "", err
	}
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	note := models.VoiceNote{
		Ref:      ref,
		MimeType: mimeType,
		Data:     data,
	}
	if err := repo.database.Create(&note).Error; err != nil {
		return "", err
	}
	return ref, nil
}

func (repo *VoiceNoteRepository) Get(ref string) (models.VoiceNote, error) {
	var note models.VoiceNote
	if err := repo.database.First(&note, "ref = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.VoiceNote{}, ErrVoiceNoteNotFound
		}
		return models.VoiceNote{}, err
	}
	return note, nil
}

func (repo *VoiceNoteRepository) Exists(ref string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.VoiceNote{}).
		Where("ref = ?", ref).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *VoiceNoteRepository) Delete(ref string) error {
	return repo.database.Delete(&models.VoiceNote{}, "ref = ?", ref).Error
}
