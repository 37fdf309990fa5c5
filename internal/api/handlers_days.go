package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/herflow/internal/services"
)

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	return c.JSON(fiber.Map{
		"log":           handler.dayService.LoadDay(day),
		"isPeriodStart": handler.dayService.IsPeriodStart(day),
	})
}

func (handler *Handler) SaveDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var input services.DayEntryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.dayService.SaveDay(day, input)
	if err != nil {
		return handler.serviceError(c, err, "failed to save day")
	}
	return c.JSON(entry)
}

func (handler *Handler) AdjustWater(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var input waterInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.dayService.AdjustWaterIntake(day, input.Delta)
	if err != nil {
		return handler.serviceError(c, err, "failed to update water intake")
	}
	return c.JSON(entry)
}
