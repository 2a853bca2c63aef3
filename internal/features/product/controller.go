package product

import (
	"errors"

	"go-backoffice/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type ProductController struct {
	Service ProductService
}

func NewProductController(service ProductService) *ProductController {
	return &ProductController{Service: service}
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	SalePrice   float64  `json:"sale_price,omitempty"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// ListProducts godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page query int false "Page number"
// @Param        search query string false "Search by name or SKU"
// @Param        filter_status query string false "Filter by status"
// @Router       /api/products [get]
func (ctrl *ProductController) ListProducts(c *fiber.Ctx) error {
	q := models.ListQueryFromCtx(c)

	result, err := ctrl.Service.ListProducts(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}
	return c.JSON(result)
}

// GetProduct godoc
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Router       /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *fiber.Ctx) error {
	res, err := ctrl.Service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return productErrorResponse(c, err)
	}
	return c.JSON(res)
}

// GetProductBySlug godoc
// @Summary      Get product by slug
// @Tags         products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Router       /api/products/slug/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *fiber.Ctx) error {
	res, err := ctrl.Service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return productErrorResponse(c, err)
	}
	return c.JSON(res)
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Router       /api/products [post]
func (ctrl *ProductController) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required and price must not be negative"})
	}

	p, err := ctrl.Service.CreateProduct(c.UserContext(), &Product{
		Name:        req.Name,
		Slug:        req.Slug,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		Status:      req.Status,
		Featured:    req.Featured,
		Categories:  req.Categories,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Router       /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *fiber.Ctx) error {
	patch := bson.M{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	delete(patch, "id")
	delete(patch, "_id")
	if len(patch) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to update"})
	}

	p, err := ctrl.Service.UpdateProduct(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return productErrorResponse(c, err)
	}
	return c.JSON(p)
}

// DeleteProduct godoc
// @Summary      Delete a product and its attachments
// @Tags         products
// @Param        id path string true "Product ID"
// @Router       /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return productErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// BulkDeleteProducts godoc
// @Summary      Delete multiple products
// @Tags         products
// @Accept       json
// @Router       /api/products/bulk-delete [post]
func (ctrl *ProductController) BulkDeleteProducts(c *fiber.Ctx) error {
	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil || len(req.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ids is required"})
	}

	deleted, err := ctrl.Service.BulkDelete(c.UserContext(), req.IDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete products"})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func productErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
