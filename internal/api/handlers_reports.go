package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) WeeklyReport(c *fiber.Ctx) error {
	caregiver, _ := currentUser(c)

	report, err := handler.adherence.WeeklyReport(caregiver.ID, handler.clock.Now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build report")
	}
	return c.JSON(report)
}
