package restaurant

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RestaurantApi struct {
	Controller *RestaurantController
	Config     *config.Config
}

func NewRestaurantApi(controller *RestaurantController, config *config.Config) *RestaurantApi {
	return &RestaurantApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *RestaurantApi) Setup(app *fiber.App) {
	group := app.Group("/api/restaurants", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListRestaurants)
	group.Post("/", a.Controller.CreateRestaurant)
	group.Get("/featured", a.Controller.FeaturedRestaurants)
	group.Get("/nearby", a.Controller.NearbyRestaurants)
	group.Get("/slug/:slug", a.Controller.GetRestaurantBySlug)
	group.Get("/:id", a.Controller.GetRestaurant)
	group.Put("/:id", a.Controller.UpdateRestaurant)
	group.Delete("/:id", a.Controller.DeleteRestaurant)
}
