package user

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	Controller *UserController
	Config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) *UserApi {
	return &UserApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/users", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListUsers)
	group.Post("/", a.Controller.CreateUser)
	group.Get("/:id", a.Controller.GetUser)
	group.Put("/:id", a.Controller.UpdateUser)
	group.Patch("/:id/status", a.Controller.UpdateUserStatus)
	group.Delete("/:id", a.Controller.DeleteUser)
}
