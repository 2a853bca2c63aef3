package order

import (
	"go-backoffice/internal/config"
	"go-backoffice/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OrderApi struct {
	Controller *OrderController
	Config     *config.Config
}

func NewOrderApi(controller *OrderController, config *config.Config) *OrderApi {
	return &OrderApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *OrderApi) Setup(app *fiber.App) {
	group := app.Group("/api/orders", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListOrders)
	group.Post("/", a.Controller.PlaceOrder)
	group.Get("/mine", a.Controller.MyOrders)
	group.Get("/number/:number", a.Controller.GetOrderByNumber)
	group.Get("/restaurant/:id", a.Controller.RestaurantOrders)
	group.Get("/:id", a.Controller.GetOrder)
	group.Patch("/:id/status", a.Controller.UpdateOrderStatus)
	group.Post("/:id/pay", a.Controller.MarkOrderPaid)
}
