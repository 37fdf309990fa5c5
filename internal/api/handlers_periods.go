package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/herflow/internal/models"
)

func (handler *Handler) GetPeriods(c *fiber.Ctx) error {
	return c.JSON(handler.periodsOrEmpty())
}

func (handler *Handler) AddPeriod(c *fiber.Ctx) error {
	var entry models.PeriodEntry
	if err := c.BodyParser(&entry); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.store.AddPeriod(entry); err != nil {
		return handler.serviceError(c, err, "failed to save period")
	}
	return c.Status(fiber.StatusCreated).JSON(handler.periodsOrEmpty())
}

func (handler *Handler) UpdatePeriod(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid period index")
	}

	var entry models.PeriodEntry
	if err := c.BodyParser(&entry); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.store.UpdatePeriod(index, entry); err != nil {
		return handler.serviceError(c, err, "failed to update period")
	}
	return c.JSON(handler.periodsOrEmpty())
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid period index")
	}
	if err := handler.store.DeletePeriod(index); err != nil {
		return handler.serviceError(c, err, "failed to delete period")
	}
	return c.JSON(handler.periodsOrEmpty())
}

func (handler *Handler) DeletePeriodStartingOn(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	deleted, err := handler.dayService.DeletePeriodStartingOn(day)
	if err != nil {
		return handler.serviceError(c, err, "failed to delete period")
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (handler *Handler) periodsOrEmpty() []models.PeriodEntry {
	periods := handler.store.Periods()
	if periods == nil {
		return []models.PeriodEntry{}
	}
	return periods
}
