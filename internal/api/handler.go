package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/db"
	"github.com/ternovka/medbell/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	secretKey       []byte
	location        *time.Location
	clock           services.Clock
	repositories    *db.Repositories
	authService     *services.AuthService
	medicineService *services.MedicineService
	adherence       *services.AdherenceService
	dispatcher      *services.Dispatcher
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, clock services.Clock) *Handler {
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = services.SystemClock{}
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:       []byte(secretKey),
		location:        location,
		clock:           clock,
		repositories:    repositories,
		authService:     services.NewAuthService(repositories.Users),
		medicineService: services.NewMedicineService(repositories.Medicines, repositories.VoiceNotes),
		adherence:       services.NewAdherenceService(repositories.Medicines, location),
		dispatcher:      services.NewDispatcher(repositories.Medicines, repositories.VoiceNotes, clock, location),
	}
}

// Dispatcher exposes the alert state machine so the host can drive its tick
// cadence.
func (handler *Handler) Dispatcher() *services.Dispatcher {
	return handler.dispatcher
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
