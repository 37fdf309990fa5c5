package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/herflow/internal/services"
)

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	day, err := parseOptionalDay(c.Query("date"), handler.today())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	snapshot := handler.store.Snapshot()
	return c.JSON(services.BuildCyclePrediction(snapshot.Profile, snapshot.Periods, day))
}

func (handler *Handler) GetStatus(c *fiber.Ctx) error {
	snapshot := handler.store.Snapshot()
	return c.JSON(services.BuildCycleStatus(snapshot.Profile, snapshot.Periods, handler.today()))
}

func (handler *Handler) GetFertility(c *fiber.Ctx) error {
	snapshot := handler.store.Snapshot()
	return c.JSON(services.BuildFertilityOutlook(snapshot.Profile, snapshot.Periods, handler.today()))
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	snapshot := handler.store.Snapshot()
	insights, ok := services.BuildInsights(snapshot.Profile, snapshot.Periods, snapshot.DailyLogs)
	if !ok {
		return c.JSON(fiber.Map{"available": false, "insights": nil})
	}
	return c.JSON(fiber.Map{"available": true, "insights": insights})
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	today := handler.today()
	month := services.MonthStart(today)
	if raw := c.Query("month"); raw != "" {
		parsed, err := services.ParseMonth(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		month = parsed
	}

	snapshot := handler.store.Snapshot()
	days := services.BuildCalendarMonth(month, snapshot.Profile, snapshot.Periods, snapshot.DailyLogs, today)
	return c.JSON(fiber.Map{
		"month": month.Time().Format("2006-01"),
		"days":  days,
	})
}
