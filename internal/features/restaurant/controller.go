package restaurant

import (
	"errors"
	"strconv"

	"go-backoffice/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type RestaurantController struct {
	Service RestaurantService
}

func NewRestaurantController(service RestaurantService) *RestaurantController {
	return &RestaurantController{Service: service}
}

type CreateRestaurantRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Phone       string   `json:"phone,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Cuisines    []string `json:"cuisines,omitempty"`
	Status      string   `json:"status,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

// ListRestaurants godoc
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Router       /api/restaurants [get]
func (ctrl *RestaurantController) ListRestaurants(c *fiber.Ctx) error {
	q := models.ListQueryFromCtx(c)

	result, err := ctrl.Service.ListRestaurants(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch restaurants"})
	}
	return c.JSON(result)
}

// FeaturedRestaurants godoc
// @Summary      Featured open restaurants
// @Tags         restaurants
// @Produce      json
// @Param        limit query int false "Max results" default(10)
// @Router       /api/restaurants/featured [get]
func (ctrl *RestaurantController) FeaturedRestaurants(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	restaurants, err := ctrl.Service.FindFeatured(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch restaurants"})
	}
	return c.JSON(fiber.Map{"data": restaurants})
}

// NearbyRestaurants godoc
// @Summary      Open restaurants near a point
// @Tags         restaurants
// @Produce      json
// @Param        lng query number true "Longitude"
// @Param        lat query number true "Latitude"
// @Param        radius_km query number false "Search radius in km" default(5)
// @Router       /api/restaurants/nearby [get]
func (ctrl *RestaurantController) NearbyRestaurants(c *fiber.Ctx) error {
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng != nil || errLat != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lng and lat are required"})
	}
	radius, _ := strconv.ParseFloat(c.Query("radius_km", "5"), 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	restaurants, err := ctrl.Service.FindNearby(c.UserContext(), lng, lat, radius, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch restaurants"})
	}
	return c.JSON(fiber.Map{"data": restaurants})
}

// GetRestaurant godoc
// @Summary      Get restaurant by ID
// @Tags         restaurants
// @Param        id path string true "Restaurant ID"
// @Router       /api/restaurants/{id} [get]
func (ctrl *RestaurantController) GetRestaurant(c *fiber.Ctx) error {
	res, err := ctrl.Service.GetRestaurant(c.UserContext(), c.Params("id"))
	if err != nil {
		return restaurantErrorResponse(c, err)
	}
	return c.JSON(res)
}

// GetRestaurantBySlug godoc
// @Summary      Get restaurant by slug
// @Tags         restaurants
// @Param        slug path string true "Restaurant slug"
// @Router       /api/restaurants/slug/{slug} [get]
func (ctrl *RestaurantController) GetRestaurantBySlug(c *fiber.Ctx) error {
	res, err := ctrl.Service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return restaurantErrorResponse(c, err)
	}
	return c.JSON(res)
}

// CreateRestaurant godoc
// @Summary      Create a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Router       /api/restaurants [post]
func (ctrl *RestaurantController) CreateRestaurant(c *fiber.Ctx) error {
	var req CreateRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Address == "" || req.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, address and city are required"})
	}

	rst := &Restaurant{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Phone:       req.Phone,
		Cuisines:    req.Cuisines,
		Status:      req.Status,
		Featured:    req.Featured,
	}
	if req.Longitude != nil && req.Latitude != nil {
		rst.Location = NewGeoPoint(*req.Longitude, *req.Latitude)
	}

	created, err := ctrl.Service.CreateRestaurant(c.UserContext(), rst)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create restaurant"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateRestaurant godoc
// @Summary      Update a restaurant
// @Tags         restaurants
// @Param        id path string true "Restaurant ID"
// @Router       /api/restaurants/{id} [put]
func (ctrl *RestaurantController) UpdateRestaurant(c *fiber.Ctx) error {
	patch := bson.M{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	delete(patch, "id")
	delete(patch, "_id")
	if len(patch) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to update"})
	}

	rst, err := ctrl.Service.UpdateRestaurant(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return restaurantErrorResponse(c, err)
	}
	return c.JSON(rst)
}

// DeleteRestaurant godoc
// @Summary      Delete a restaurant and its attachments
// @Tags         restaurants
// @Param        id path string true "Restaurant ID"
// @Router       /api/restaurants/{id} [delete]
func (ctrl *RestaurantController) DeleteRestaurant(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteRestaurant(c.UserContext(), c.Params("id")); err != nil {
		return restaurantErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Restaurant deleted successfully"})
}

func restaurantErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Restaurant not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
