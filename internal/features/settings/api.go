package settings

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	Controller *SettingsController
	Config     *config.Config
}

func NewSettingsApi(controller *SettingsController, config *config.Config) *SettingsApi {
	return &SettingsApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *SettingsApi) Setup(app *fiber.App) {
	group := app.Group("/api/settings", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/general", a.Controller.GetGeneralConfig)
	group.Put("/general", a.Controller.UpdateGeneralConfig)
	group.Get("/uploads", a.Controller.GetUploadsConfig)
	group.Put("/uploads", a.Controller.UpdateUploadsConfig)
}
