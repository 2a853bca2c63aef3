package file

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FileApi struct {
	controller *FileController
	config     *config.Config
}

func NewFileApi(controller *FileController, config *config.Config) *FileApi {
	return &FileApi{
		controller: controller,
		config:     config,
	}
}

func (h *FileApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/files", auth, h.controller.UploadFile)
	app.Get("/api/files/:id", auth, h.controller.GetFile)
	app.Delete("/api/files/:id", auth, h.controller.DeleteFile)

	app.Get("/api/owners/:ownerType/:ownerId/files", auth, h.controller.GetOwnerFiles)
	app.Post("/api/owners/:ownerType/:ownerId/files/sync", auth, h.controller.SyncFiles)
	app.Post("/api/owners/:ownerType/:ownerId/files/reorder", auth, h.controller.ReorderFiles)
	app.Delete("/api/owners/:ownerType/:ownerId/files", auth, h.controller.DeleteOwnerFiles)

	// Public disk contents are served directly
	app.Static(h.config.FSURL, h.config.FSPath)
}
