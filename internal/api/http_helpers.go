package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

var validationErrors = []error{
	models.ErrInvalidDateText,
	services.ErrInvalidName,
	services.ErrNameTooLong,
	services.ErrCycleLengthOutOfRange,
	services.ErrPeriodLengthOutOfRange,
	services.ErrYearOfBirthOutOfRange,
	services.ErrInvalidDate,
	services.ErrInvalidTheme,
	services.ErrInvalidFlowIntensity,
	services.ErrUnknownSymptom,
	services.ErrUnknownMood,
	services.ErrInvalidOvulationTest,
	services.ErrInvalidMeasurement,
	services.ErrPeriodEndBeforeStart,
	services.ErrPeriodStartRequired,
	services.ErrDailyLogDateRequired,
	services.ErrOnboardingStartDateRequired,
	services.ErrOnboardingStartDateInFuture,
	services.ErrMalformedBackup,
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps a domain error onto a status code. Unknown errors are
// logged and reported as a generic failure.
func (handler *Handler) serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrPeriodIndexOutOfRange),
		errors.Is(err, services.ErrProfileNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrOnboardingStepsRequired):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrStoreClosed),
		errors.Is(err, services.ErrStoreNotLoaded):
		return apiError(c, fiber.StatusServiceUnavailable, "store unavailable")
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	handler.logger.Error(fallback, "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, fallback)
}

func parseDayParam(raw string) (models.Date, error) {
	return services.ParseDateInput(raw)
}

// parseOptionalDay reads a yyyy-MM-dd query value, defaulting to fallback.
func parseOptionalDay(raw string, fallback models.Date) (models.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return services.ParseDateInput(raw)
}

func setAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}

func buildExportFilename(day models.Date, extension string) string {
	return fmt.Sprintf("herflow-export-%s.%s", day, extension)
}
