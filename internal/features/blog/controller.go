package blog

import (
	"errors"

	"go-backoffice/internal/common/models"
	"go-backoffice/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type BlogController struct {
	Service BlogService
}

func NewBlogController(service BlogService) *BlogController {
	return &BlogController{Service: service}
}

type CreateBlogRequest struct {
	Title   string   `json:"title"`
	Slug    string   `json:"slug,omitempty"`
	Excerpt string   `json:"excerpt,omitempty"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Status  string   `json:"status,omitempty"`
}

// ListBlogs godoc
// @Summary      List blog posts
// @Tags         blogs
// @Produce      json
// @Router       /api/blogs [get]
func (ctrl *BlogController) ListBlogs(c *fiber.Ctx) error {
	q := models.ListQueryFromCtx(c)

	result, err := ctrl.Service.ListBlogs(c.UserContext(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch posts"})
	}
	return c.JSON(result)
}

// GetBlog godoc
// @Summary      Get blog post by ID
// @Tags         blogs
// @Param        id path string true "Post ID"
// @Router       /api/blogs/{id} [get]
func (ctrl *BlogController) GetBlog(c *fiber.Ctx) error {
	res, err := ctrl.Service.GetBlog(c.UserContext(), c.Params("id"))
	if err != nil {
		return blogErrorResponse(c, err)
	}
	return c.JSON(res)
}

// GetBlogBySlug godoc
// @Summary      Get blog post by slug
// @Tags         blogs
// @Param        slug path string true "Post slug"
// @Router       /api/blogs/slug/{slug} [get]
func (ctrl *BlogController) GetBlogBySlug(c *fiber.Ctx) error {
	res, err := ctrl.Service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return blogErrorResponse(c, err)
	}
	return c.JSON(res)
}

// CreateBlog godoc
// @Summary      Create a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Router       /api/blogs [post]
func (ctrl *BlogController) CreateBlog(c *fiber.Ctx) error {
	var req CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and content are required"})
	}

	var authorID string
	if claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims); ok {
		authorID = claims.UserID
	}

	b, err := ctrl.Service.CreateBlog(c.UserContext(), &Blog{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Tags:     req.Tags,
		Status:   req.Status,
		AuthorID: authorID,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// UpdateBlog godoc
// @Summary      Update a blog post
// @Tags         blogs
// @Param        id path string true "Post ID"
// @Router       /api/blogs/{id} [put]
func (ctrl *BlogController) UpdateBlog(c *fiber.Ctx) error {
	patch := bson.M{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	delete(patch, "id")
	delete(patch, "_id")
	if len(patch) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to update"})
	}

	b, err := ctrl.Service.UpdateBlog(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return blogErrorResponse(c, err)
	}
	return c.JSON(b)
}

// PublishBlog godoc
// @Summary      Publish a blog post
// @Tags         blogs
// @Param        id path string true "Post ID"
// @Router       /api/blogs/{id}/publish [post]
func (ctrl *BlogController) PublishBlog(c *fiber.Ctx) error {
	b, err := ctrl.Service.Publish(c.UserContext(), c.Params("id"))
	if err != nil {
		return blogErrorResponse(c, err)
	}
	return c.JSON(b)
}

// DeleteBlog godoc
// @Summary      Delete a blog post and its attachments
// @Tags         blogs
// @Param        id path string true "Post ID"
// @Router       /api/blogs/{id} [delete]
func (ctrl *BlogController) DeleteBlog(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteBlog(c.UserContext(), c.Params("id")); err != nil {
		return blogErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

func blogErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
