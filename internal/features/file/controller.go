package file

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go-backoffice/internal/media"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

// UploadPolicy supplies the admin-configured upload limits enforced on top
// of the service defaults.
type UploadPolicy interface {
	UploadLimits(ctx context.Context) (maxBytes int64, allowedTypes []string, optimize bool, err error)
}

type FileController struct {
	Service FileService
	Policy  UploadPolicy
}

func NewFileController(service FileService, policy UploadPolicy) *FileController {
	return &FileController{Service: service, Policy: policy}
}

// UploadFile godoc
// @Summary      Upload a file
// @Description  Upload a file, optionally generating resized image variants
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData file   true  "File to upload"
// @Param        path        formData string false "Target path (default uploads)"
// @Param        collection  formData string false "Collection name"
// @Param        resize      formData bool   false "Generate image variants (default true)"
// @Param        optimize    formData bool   false "Optimize encoding (default true)"
// @Param        meta        formData string false "Extra metadata as a JSON object"
// @Router       /api/files [post]
func (c *FileController) UploadFile(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Error retrieving file",
		})
	}

	src, err := header.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Error reading file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Error reading file",
		})
	}

	opts := DefaultUploadOptions()
	opts.Collection = ctx.FormValue("collection")
	opts.Resize = ctx.FormValue("resize", "true") == "true"
	opts.Optimize = ctx.FormValue("optimize", "true") == "true"
	opts.OwnerType = ctx.FormValue("owner_type")
	opts.OwnerID = ctx.FormValue("owner_id")
	if raw := ctx.FormValue("meta"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.Meta); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "meta must be a JSON object",
			})
		}
	}

	// Admin-configured limits narrow the defaults; a failed lookup falls
	// back to the service's own validation.
	if c.Policy != nil {
		if maxBytes, allowed, optimize, err := c.Policy.UploadLimits(ctx.UserContext()); err == nil {
			if maxBytes > 0 && int64(len(data)) > maxBytes {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"error":   "File exceeds the configured " + humanize.IBytes(uint64(maxBytes)) + " limit",
				})
			}
			opts.AllowedTypes = allowed
			if ctx.FormValue("optimize") == "" {
				opts.Optimize = optimize
			}
		}
	}

	targetPath := ctx.FormValue("path", "uploads")

	record, err := c.Service.Upload(ctx.UserContext(), &Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, targetPath, opts)
	if err != nil {
		return ctx.Status(uploadErrorStatus(err)).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	resource, err := c.Service.Resource(record)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    resource,
	})
}

func uploadErrorStatus(err error) int {
	var ve *ValidationError
	var ee *media.EncodingError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, media.ErrUnsupportedMedia), errors.As(err, &ee):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// GetFile godoc
func (c *FileController) GetFile(ctx *fiber.Ctx) error {
	record, err := c.Service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "File not found",
		})
	}

	resource, err := c.Service.Resource(record)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": resource})
}

// DeleteFile godoc
func (c *FileController) DeleteFile(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteByID(ctx.UserContext(), ctx.Params("id")); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "File deleted successfully",
	})
}

// GetOwnerFiles godoc
func (c *FileController) GetOwnerFiles(ctx *fiber.Ctx) error {
	attachments := c.Service.For(ctx.Params("ownerType"), ctx.Params("ownerId"))

	var files []*File
	var err error
	if collection := ctx.Query("collection"); collection != "" {
		files, err = attachments.InCollection(ctx.UserContext(), collection)
	} else {
		files, err = attachments.Files(ctx.UserContext())
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error retrieving files",
		})
	}

	resources := make([]*Resource, 0, len(files))
	for _, f := range files {
		resource, err := c.Service.Resource(f)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		resources = append(resources, resource)
	}

	return ctx.JSON(fiber.Map{"success": true, "data": resources})
}

type syncRequest struct {
	FileIDs    []string `json:"file_ids"`
	Collection string   `json:"collection"`
}

// SyncFiles godoc
func (c *FileController) SyncFiles(ctx *fiber.Ctx) error {
	var req syncRequest
	if err := ctx.BodyParser(&req); err != nil || req.Collection == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	attachments := c.Service.For(ctx.Params("ownerType"), ctx.Params("ownerId"))
	if err := attachments.Sync(ctx.UserContext(), req.FileIDs, req.Collection); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Collection synced"})
}

type reorderRequest struct {
	Collection string         `json:"collection"`
	Order      map[string]int `json:"order"`
}

// ReorderFiles godoc
func (c *FileController) ReorderFiles(ctx *fiber.Ctx) error {
	var req reorderRequest
	if err := ctx.BodyParser(&req); err != nil || req.Collection == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	attachments := c.Service.For(ctx.Params("ownerType"), ctx.Params("ownerId"))
	if err := attachments.Reorder(ctx.UserContext(), req.Collection, req.Order); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Collection reordered"})
}

// DeleteOwnerFiles godoc
func (c *FileController) DeleteOwnerFiles(ctx *fiber.Ctx) error {
	attachments := c.Service.For(ctx.Params("ownerType"), ctx.Params("ownerId"))

	// Best-effort: every deletion is attempted, success reports the aggregate
	ok, err := attachments.DeleteAll(ctx.UserContext(), ctx.Query("collection"))
	if err != nil {
		return ctx.JSON(fiber.Map{"success": ok, "error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": ok})
}
