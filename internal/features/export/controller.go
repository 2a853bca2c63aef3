package export

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

// Export godoc
// @Summary      Export an entity as CSV, XLSX or PDF
// @Tags         export
// @Param        entity path string true "products, blogs or orders"
// @Param        format query string false "csv, xlsx or pdf" default(csv)
// @Param        from query string false "Orders only: RFC3339 range start"
// @Param        to query string false "Orders only: RFC3339 range end"
// @Router       /api/export/{entity} [get]
func (ctrl *ExportController) Export(c *fiber.Ctx) error {
	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var doc *Document
	switch c.Params("entity") {
	case "products":
		doc, err = ctrl.Service.ExportProducts(c.UserContext(), format)
	case "blogs":
		doc, err = ctrl.Service.ExportBlogs(c.UserContext(), format)
	case "orders":
		from, to, rangeErr := parseRange(c)
		if rangeErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": rangeErr.Error()})
		}
		doc, err = ctrl.Service.ExportOrders(c.UserContext(), format, from, to)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown export entity"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Send(doc.Data)
}

// parseRange reads the orders date window, defaulting to the last 30 days
func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, err
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}
