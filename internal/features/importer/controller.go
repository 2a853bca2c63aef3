package importer

import (
	"encoding/json"
	"errors"

	"go-backoffice/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ImportController struct {
	Service ImportService
}

func NewImportController(service ImportService) *ImportController {
	return &ImportController{Service: service}
}

// PreviewImport godoc
// @Summary      Preview an import file
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV or XLSX file"
// @Router       /api/import/preview [post]
func (ctrl *ImportController) PreviewImport(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	src, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error reading file"})
	}
	defer src.Close()

	preview, err := ctrl.Service.Preview(c.UserContext(), src, header.Filename)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(preview)
}

// RunImport godoc
// @Summary      Import rows from a CSV or XLSX file
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV or XLSX file"
// @Param        entity formData string true "products or blogs"
// @Param        mapping formData string false "Column to field mapping as a JSON object"
// @Router       /api/import [post]
func (ctrl *ImportController) RunImport(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	entity := c.FormValue("entity")
	if entity == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "entity is required"})
	}

	mapping := map[string]string{}
	if raw := c.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mapping must be a JSON object"})
		}
	}

	src, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error reading file"})
	}
	defer src.Close()

	var userID string
	if claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims); ok {
		userID = claims.UserID
	}

	job, err := ctrl.Service.Import(c.UserContext(), src, header.Filename, entity, mapping, userID)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// GetImportJob godoc
// @Summary      Get an import job
// @Tags         import
// @Param        id path string true "Job ID"
// @Router       /api/import/jobs/{id} [get]
func (ctrl *ImportController) GetImportJob(c *fiber.Ctx) error {
	job, err := ctrl.Service.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(job)
}

// ListImportJobs godoc
// @Summary      Recent import jobs
// @Tags         import
// @Router       /api/import/jobs [get]
func (ctrl *ImportController) ListImportJobs(c *fiber.Ctx) error {
	jobs, err := ctrl.Service.RecentJobs(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch jobs"})
	}
	return c.JSON(fiber.Map{"data": jobs})
}
