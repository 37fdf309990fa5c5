package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GetState(c *fiber.Ctx) error {
	snapshot := handler.store.Snapshot()
	periods := snapshot.Periods
	if periods == nil {
		periods = []models.PeriodEntry{}
	}
	logs := snapshot.DailyLogs
	if logs == nil {
		logs = []models.DailyLog{}
	}

	return c.JSON(stateResponse{
		Profile:            snapshot.Profile,
		Periods:            periods,
		DailyLogs:          logs,
		Theme:              snapshot.Settings.Theme,
		OnboardingComplete: snapshot.OnboardingComplete,
		SetupIncomplete:    services.SetupIncomplete(snapshot.Profile, snapshot.Periods),
	})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if update.IsEmpty() {
		return apiError(c, fiber.StatusBadRequest, "no profile fields to update")
	}

	profile, err := handler.settingsSvc.UpdateProfile(update)
	if err != nil {
		return handler.serviceError(c, err, "failed to update profile")
	}
	return c.JSON(profile)
}
