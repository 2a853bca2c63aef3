package user

import (
	"go-backoffice/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type UserController struct {
	UserService UserService
}

func NewUserController(userService UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

type UpdateUserRequest struct {
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status"`
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(15)
// @Param        search query string false "Search by name or email"
// @Router       /api/users [get]
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	q := models.ListQueryFromCtx(c)

	result, err := ctrl.UserService.ListUsers(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}
	return c.JSON(result)
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Router       /api/users/{id} [get]
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	user, err := ctrl.UserService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	return c.JSON(user)
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Router       /api/users [post]
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, email and a password of at least 8 characters are required",
		})
	}

	user, err := ctrl.UserService.CreateUser(c.UserContext(), req.Name, req.Email, req.Password, req.Roles)
	if err != nil {
		if err == ErrEmailTaken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Router       /api/users/{id} [put]
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	patch := bson.M{}
	if req.Name != "" {
		patch["name"] = req.Name
	}
	if req.Email != "" {
		patch["email"] = req.Email
	}
	if req.Roles != nil {
		patch["roles"] = req.Roles
	}
	if len(patch) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to update"})
	}

	user, err := ctrl.UserService.UpdateUser(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// UpdateUserStatus godoc
// @Summary      Update user status
// @Tags         users
// @Param        id path string true "User ID"
// @Router       /api/users/{id}/status [patch]
func (ctrl *UserController) UpdateUserStatus(c *fiber.Ctx) error {
	var req UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := ctrl.UserService.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Param        id path string true "User ID"
// @Router       /api/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	if err := ctrl.UserService.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
