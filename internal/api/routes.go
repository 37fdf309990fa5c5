package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/state", handler.GetState)
	api.Put("/profile", handler.UpdateProfile)
	api.Patch("/profile", handler.UpdateProfile)

	onboarding := api.Group("/onboarding")
	onboarding.Post("/begin", handler.OnboardingBegin)
	onboarding.Post("/cycle-length", handler.OnboardingCycleLength)
	onboarding.Post("/period-length", handler.OnboardingPeriodLength)
	onboarding.Post("/complete", handler.OnboardingComplete)
	onboarding.Post("/skip", handler.OnboardingSkip)

	periods := api.Group("/periods")
	periods.Get("", handler.GetPeriods)
	periods.Post("", handler.AddPeriod)
	periods.Delete("/start/:date", handler.DeletePeriodStartingOn)
	periods.Put("/:index", handler.UpdatePeriod)
	periods.Delete("/:index", handler.DeletePeriod)

	days := api.Group("/days")
	days.Get("/:date", handler.GetDay)
	days.Post("/:date", handler.SaveDay)
	days.Post("/:date/water", handler.AdjustWater)

	api.Get("/predictions", handler.GetPredictions)
	api.Get("/status", handler.GetStatus)
	api.Get("/fertility", handler.GetFertility)
	api.Get("/insights", handler.GetInsights)
	api.Get("/calendar", handler.GetCalendar)

	settings := api.Group("/settings")
	settings.Put("/theme", handler.SetTheme)
	settings.Post("/clear-data", handler.ClearAllData)
	api.Post("/clear-data", handler.ClearAllData)

	api.Get("/backup", handler.ExportBackup)
	api.Post("/restore", handler.RestoreBackup)
	api.Get("/export/csv", handler.ExportCSV)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
