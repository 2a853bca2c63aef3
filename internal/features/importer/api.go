package importer

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ImportApi struct {
	Controller *ImportController
	Config     *config.Config
}

func NewImportApi(controller *ImportController, config *config.Config) *ImportApi {
	return &ImportApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *ImportApi) Setup(app *fiber.App) {
	group := app.Group("/api/import", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Post("/", a.Controller.RunImport)
	group.Post("/preview", a.Controller.PreviewImport)
	group.Get("/jobs", a.Controller.ListImportJobs)
	group.Get("/jobs/:id", a.Controller.GetImportJob)
}
