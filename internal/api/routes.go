package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	patients := api.Group("/patients", handler.AuthRequired, handler.CaregiverOnly)
	patients.Post("", handler.CreatePatient)
	patients.Get("", handler.ListPatients)

	medicines := api.Group("/medicines", handler.AuthRequired, handler.CaregiverOnly)
	medicines.Post("", handler.CreateMedicine)
	medicines.Get("", handler.ListMedicines)
	medicines.Put("/:id", handler.UpdateMedicine)
	medicines.Delete("/:id", handler.DeleteMedicine)

	api.Get("/my/medicines", handler.AuthRequired, handler.PatientOnly, handler.ListMyMedicines)

	voiceNotes := api.Group("/voice-notes", handler.AuthRequired)
	voiceNotes.Post("", handler.CaregiverOnly, handler.UploadVoiceNote)
	voiceNotes.Get("/:ref", handler.DownloadVoiceNote)

	alerts := api.Group("/alerts", handler.AuthRequired, handler.PatientOnly)
	alerts.Post("/start", handler.StartMonitoring)
	alerts.Post("/stop", handler.StopMonitoring)
	alerts.Get("/current", handler.CurrentAlert)
	alerts.Post("/confirm", handler.ConfirmTaken)
	alerts.Post("/dismiss", handler.DismissAlert)

	reports := api.Group("/reports", handler.AuthRequired, handler.CaregiverOnly)
	reports.Get("/weekly", handler.WeeklyReport)
}
