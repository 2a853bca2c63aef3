package order

import (
	"errors"
	"strconv"

	"go-backoffice/internal/common/models"
	"go-backoffice/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Service OrderService
}

func NewOrderController(service OrderService) *OrderController {
	return &OrderController{Service: service}
}

type PlaceOrderRequest struct {
	RestaurantID string      `json:"restaurant_id,omitempty"`
	Items        []OrderItem `json:"items"`
	DeliveryFee  float64     `json:"delivery_fee,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ListOrders godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Router       /api/orders [get]
func (ctrl *OrderController) ListOrders(c *fiber.Ctx) error {
	q := models.ListQueryFromCtx(c)

	result, err := ctrl.Service.ListOrders(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(result)
}

// PlaceOrder godoc
// @Summary      Place a new order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Router       /api/orders [post]
func (ctrl *OrderController) PlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "items is required"})
	}

	var userID string
	if claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims); ok {
		userID = claims.UserID
	}

	o, err := ctrl.Service.PlaceOrder(c.UserContext(), &Order{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		Items:        req.Items,
		DeliveryFee:  req.DeliveryFee,
		Notes:        req.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GetOrder godoc
// @Summary      Get order by ID
// @Tags         orders
// @Param        id path string true "Order ID"
// @Router       /api/orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *fiber.Ctx) error {
	o, err := ctrl.Service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return orderErrorResponse(c, err)
	}
	return c.JSON(o)
}

// GetOrderByNumber godoc
// @Summary      Get order by order number
// @Tags         orders
// @Param        number path string true "Order number"
// @Router       /api/orders/number/{number} [get]
func (ctrl *OrderController) GetOrderByNumber(c *fiber.Ctx) error {
	o, err := ctrl.Service.GetByOrderNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return orderErrorResponse(c, err)
	}
	return c.JSON(o)
}

// MyOrders godoc
// @Summary      Orders of the authenticated user
// @Tags         orders
// @Router       /api/orders/mine [get]
func (ctrl *OrderController) MyOrders(c *fiber.Ctx) error {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	orders, err := ctrl.Service.UserOrders(c.UserContext(), claims.UserID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(fiber.Map{"data": orders})
}

// RestaurantOrders godoc
// @Summary      Orders of a restaurant
// @Tags         orders
// @Param        id path string true "Restaurant ID"
// @Router       /api/orders/restaurant/{id} [get]
func (ctrl *OrderController) RestaurantOrders(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	orders, err := ctrl.Service.RestaurantOrders(c.UserContext(), c.Params("id"), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(fiber.Map{"data": orders})
}

// UpdateOrderStatus godoc
// @Summary      Advance order status
// @Tags         orders
// @Param        id path string true "Order ID"
// @Router       /api/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status is required"})
	}

	o, err := ctrl.Service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return orderErrorResponse(c, err)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(o)
}

// MarkOrderPaid godoc
// @Summary      Mark an order as paid
// @Tags         orders
// @Param        id path string true "Order ID"
// @Router       /api/orders/{id}/pay [post]
func (ctrl *OrderController) MarkOrderPaid(c *fiber.Ctx) error {
	o, err := ctrl.Service.MarkPaid(c.UserContext(), c.Params("id"))
	if err != nil {
		return orderErrorResponse(c, err)
	}
	return c.JSON(o)
}

func orderErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
