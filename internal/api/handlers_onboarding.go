package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

func (handler *Handler) OnboardingBegin(c *fiber.Ctx) error {
	var input nameInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := handler.onboardingSvc.Begin(input.Name)
	if err != nil {
		return handler.serviceError(c, err, "failed to save profile")
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) OnboardingCycleLength(c *fiber.Ctx) error {
	var input lengthInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.onboardingSvc.SetCycleLength(input.Value); err != nil {
		return handler.serviceError(c, err, "failed to save cycle length")
	}
	return c.JSON(handler.store.Profile())
}

func (handler *Handler) OnboardingPeriodLength(c *fiber.Ctx) error {
	var input lengthInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.onboardingSvc.SetPeriodLength(input.Value); err != nil {
		return handler.serviceError(c, err, "failed to save period length")
	}
	return c.JSON(handler.store.Profile())
}

func (handler *Handler) OnboardingComplete(c *fiber.Ctx) error {
	var input onboardingCompleteInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	start, err := services.ParseDateInput(input.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	}
	var end *models.Date
	if input.EndDate != "" {
		parsed, err := services.ParseDateInput(input.EndDate)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid end date")
		}
		end = &parsed
	}

	period, err := handler.onboardingSvc.Complete(start, end, handler.location)
	if err != nil {
		return handler.serviceError(c, err, "failed to complete onboarding")
	}
	return c.JSON(fiber.Map{"ok": true, "period": period})
}

func (handler *Handler) OnboardingSkip(c *fiber.Ctx) error {
	if err := handler.onboardingSvc.Skip(); err != nil {
		return handler.serviceError(c, err, "failed to complete onboarding")
	}
	return c.JSON(fiber.Map{"ok": true})
}
