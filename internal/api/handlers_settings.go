package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) SetTheme(c *fiber.Ctx) error {
	var input themeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	theme, err := handler.settingsSvc.SetTheme(input.Theme)
	if err != nil {
		return handler.serviceError(c, err, "failed to save theme")
	}
	return c.JSON(fiber.Map{"theme": theme})
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.settingsSvc.ClearAllData(); err != nil {
		return handler.serviceError(c, err, "failed to clear data")
	}
	return c.JSON(fiber.Map{"ok": true})
}
