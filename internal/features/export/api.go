package export

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	Controller *ExportController
	Config     *config.Config
}

func NewExportApi(controller *ExportController, config *config.Config) *ExportApi {
	return &ExportApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *ExportApi) Setup(app *fiber.App) {
	app.Get("/api/export/:entity", middleware.AuthMiddleware(a.Config.SkipAuth), a.Controller.Export)
}
