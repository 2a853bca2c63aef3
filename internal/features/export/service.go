package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-backoffice/internal/features/blog"
	"go-backoffice/internal/features/order"
	"go-backoffice/internal/features/product"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a client-supplied format string, defaulting to CSV
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Document is a rendered export ready to be sent to the client
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// table is the intermediate shape every exporter renders from
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

type ExportService interface {
	ExportProducts(ctx context.Context, format Format) (*Document, error)
	ExportBlogs(ctx context.Context, format Format) (*Document, error)
	ExportOrders(ctx context.Context, format Format, from, to time.Time) (*Document, error)
}

type ExportServiceImpl struct {
	Products product.ProductRepository
	Blogs    blog.BlogRepository
	Orders   order.OrderRepository
}

func NewExportService(products product.ProductRepository, blogs blog.BlogRepository, orders order.OrderRepository) ExportService {
	return &ExportServiceImpl{
		Products: products,
		Blogs:    blogs,
		Orders:   orders,
	}
}

func (s *ExportServiceImpl) ExportProducts(ctx context.Context, format Format) (*Document, error) {
	products, err := s.Products.All(ctx)
	if err != nil {
		return nil, err
	}

	t := &table{
		Title:   "Products",
		Headers: []string{"ID", "Name", "Slug", "SKU", "Price", "Stock", "Status", "Created At"},
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{
			p.ID.Hex(),
			p.Name,
			p.Slug,
			p.SKU,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Stock),
			p.Status,
			p.CreatedAt.Format(time.RFC3339),
		})
	}
	return render(t, "products", format)
}

func (s *ExportServiceImpl) ExportBlogs(ctx context.Context, format Format) (*Document, error) {
	blogs, err := s.Blogs.All(ctx)
	if err != nil {
		return nil, err
	}

	t := &table{
		Title:   "Blog Posts",
		Headers: []string{"ID", "Title", "Slug", "Status", "Tags", "Created At"},
	}
	for _, b := range blogs {
		t.Rows = append(t.Rows, []string{
			b.ID.Hex(),
			b.Title,
			b.Slug,
			b.Status,
			strings.Join(b.Tags, ", "),
			b.CreatedAt.Format(time.RFC3339),
		})
	}
	return render(t, "blogs", format)
}

func (s *ExportServiceImpl) ExportOrders(ctx context.Context, format Format, from, to time.Time) (*Document, error) {
	orders, err := s.Orders.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	t := &table{
		Title:   fmt.Sprintf("Orders %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")),
		Headers: []string{"Order Number", "User", "Status", "Payment", "Subtotal", "Tax", "Total", "Created At"},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{
			o.OrderNumber,
			o.UserID,
			o.Status,
			o.PaymentStatus,
			strconv.FormatFloat(o.Subtotal, 'f', 2, 64),
			strconv.FormatFloat(o.Tax, 'f', 2, 64),
			strconv.FormatFloat(o.Total, 'f', 2, 64),
			o.CreatedAt.Format(time.RFC3339),
		})
	}
	return render(t, "orders", format)
}

func render(t *table, entity string, format Format) (*Document, error) {
	var (
		data        []byte
		contentType string
		err         error
	)

	switch format {
	case FormatCSV:
		data, err = renderCSV(t)
		contentType = "text/csv"
	case FormatXLSX:
		data, err = renderXLSX(t)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		data, err = renderPDF(t)
		contentType = "application/pdf"
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    fmt.Sprintf("%s-%s.%s", entity, time.Now().Format("20060102-150405"), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}
