package product

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProductApi struct {
	Controller *ProductController
	Config     *config.Config
}

func NewProductApi(controller *ProductController, config *config.Config) *ProductApi {
	return &ProductApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *ProductApi) Setup(app *fiber.App) {
	group := app.Group("/api/products", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListProducts)
	group.Post("/", a.Controller.CreateProduct)
	group.Post("/bulk-delete", a.Controller.BulkDeleteProducts)
	group.Get("/slug/:slug", a.Controller.GetProductBySlug)
	group.Get("/:id", a.Controller.GetProduct)
	group.Put("/:id", a.Controller.UpdateProduct)
	group.Delete("/:id", a.Controller.DeleteProduct)
}
