package settings

import (
	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Service SettingsService
}

func NewSettingsController(service SettingsService) *SettingsController {
	return &SettingsController{
		Service: service,
	}
}

// GetGeneralConfig godoc
// @Summary Get general configuration
// @Tags settings
// @Produce json
// @Success 200 {object} GeneralConfig
// @Router /api/settings/general [get]
func (c *SettingsController) GetGeneralConfig(ctx *fiber.Ctx) error {
	config, err := c.Service.GetGeneralConfig(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(config)
}

// UpdateGeneralConfig godoc
// @Summary Update general configuration
// @Tags settings
// @Accept json
// @Produce json
// @Param config body GeneralConfig true "General Configuration"
// @Success 200 {object} map[string]interface{}
// @Router /api/settings/general [put]
func (c *SettingsController) UpdateGeneralConfig(ctx *fiber.Ctx) error {
	var config GeneralConfig
	if err := ctx.BodyParser(&config); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.UpdateGeneralConfig(ctx.UserContext(), config); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Settings updated successfully"})
}

// GetUploadsConfig godoc
// @Summary Get upload configuration
// @Tags settings
// @Produce json
// @Success 200 {object} UploadsConfig
// @Router /api/settings/uploads [get]
func (c *SettingsController) GetUploadsConfig(ctx *fiber.Ctx) error {
	config, err := c.Service.GetUploadsConfig(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(config)
}

// UpdateUploadsConfig godoc
// @Summary Update upload configuration
// @Tags settings
// @Accept json
// @Produce json
// @Param config body UploadsConfig true "Uploads Configuration"
// @Success 200 {object} map[string]interface{}
// @Router /api/settings/uploads [put]
func (c *SettingsController) UpdateUploadsConfig(ctx *fiber.Ctx) error {
	var config UploadsConfig
	if err := ctx.BodyParser(&config); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if config.MaxFileSizeMB <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max_file_size_mb must be positive"})
	}

	if err := c.Service.UpdateUploadsConfig(ctx.UserContext(), config); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Settings updated successfully"})
}
