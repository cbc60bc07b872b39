package api

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/db"
)

// maxVoiceNoteBytes bounds uploaded recordings; instruction clips are short.
const maxVoiceNoteBytes = 5 << 20

func (handler *Handler) UploadVoiceNote(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("voice")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "voice file required")
	}
	if fileHeader.Size > maxVoiceNoteBytes {
		return apiError(c, fiber.StatusRequestEntityTooLarge, "voice file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "voice file unreadable")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxVoiceNoteBytes+1))
	if err != nil || len(data) == 0 || len(data) > maxVoiceNoteBytes {
		return apiError(c, fiber.StatusBadRequest, "voice file unreadable")
	}

	ref, err := handler.repositories.VoiceNotes.Put(data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "store voice note failed")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ref": ref})
}

func (handler *Handler) DownloadVoiceNote(c *fiber.Ctx) error {
	note, err := handler.repositories.VoiceNotes.Get(c.Params("ref"))
	if err != nil {
		if errors.Is(err, db.ErrVoiceNoteNotFound) {
			return apiError(c, fiber.StatusNotFound, "voice note not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "load voice note failed")
	}

	c.Set(fiber.HeaderContentType, note.MimeType)
	return c.Send(note.Data)
}
