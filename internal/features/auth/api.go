package auth

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	Controller *AuthController
	Config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) *AuthApi {
	return &AuthApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *AuthApi) Setup(app *fiber.App) {
	group := app.Group("/api/auth")

	group.Post("/register", a.Controller.Register)
	group.Post("/login", a.Controller.Login)
	group.Get("/me", middleware.AuthMiddleware(a.Config.SkipAuth), a.Controller.Me)
}
