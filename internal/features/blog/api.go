package blog

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BlogApi struct {
	Controller *BlogController
	Config     *config.Config
}

func NewBlogApi(controller *BlogController, config *config.Config) *BlogApi {
	return &BlogApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *BlogApi) Setup(app *fiber.App) {
	group := app.Group("/api/blogs", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListBlogs)
	group.Post("/", a.Controller.CreateBlog)
	group.Get("/slug/:slug", a.Controller.GetBlogBySlug)
	group.Get("/:id", a.Controller.GetBlog)
	group.Put("/:id", a.Controller.UpdateBlog)
	group.Post("/:id/publish", a.Controller.PublishBlog)
	group.Delete("/:id", a.Controller.DeleteBlog)
}
