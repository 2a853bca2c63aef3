package order

import (
	"context"
	"fmt"
	"math"
	"time"

	"go-backoffice/internal/common/models"
	"go-backoffice/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TaxRate applied to the item subtotal
const TaxRate = 0.10

type OrderService interface {
	PlaceOrder(ctx context.Context, o *Order) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*Order, error)
	ListOrders(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error)
	UserOrders(ctx context.Context, userID string, limit int64) ([]Order, error)
	RestaurantOrders(ctx context.Context, restaurantID string, limit int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
	MarkPaid(ctx context.Context, id string) (*Order, error)
}

type OrderServiceImpl struct {
	Repo   OrderRepository
	Logger *zap.Logger
}

func NewOrderService(repo OrderRepository, logger *zap.Logger) OrderService {
	return &OrderServiceImpl{
		Repo:   repo,
		Logger: logger,
	}
}

// NewOrderNumber builds a human-quotable unique reference, e.g.
// ORD-20260828-X7K2QH.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), utils.RandomString(6))
}

func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, o *Order) (*Order, error) {
	if len(o.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	var subtotal float64
	for i := range o.Items {
		item := &o.Items[i]
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %s has invalid quantity", item.ProductID)
		}
		item.Total = round2(item.UnitPrice * float64(item.Quantity))
		subtotal += item.Total
	}
	o.Subtotal = round2(subtotal)
	o.Tax = round2(subtotal * TaxRate)
	o.Total = round2(o.Subtotal + o.Tax + o.DeliveryFee)

	o.Status = StatusPending
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt

	// Regenerate on the unlikely same-day collision of the random suffix
	for attempt := 0; attempt < 3; attempt++ {
		o.OrderNumber = NewOrderNumber(o.CreatedAt)
		err := s.Repo.Create(ctx, o)
		if err == nil {
			return o, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not allocate an order number")
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *OrderServiceImpl) GetByOrderNumber(ctx context.Context, number string) (*Order, error) {
	return s.Repo.FindByOrderNumber(ctx, number)
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error) {
	orders, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &models.PagedResult{
		Data: orders,
		Meta: models.NewPageMeta(total, q.PerPage, q.Page, int64(len(orders))),
	}, nil
}

func (s *OrderServiceImpl) UserOrders(ctx context.Context, userID string, limit int64) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.FindByUser(ctx, userID, limit)
}

func (s *OrderServiceImpl) RestaurantOrders(ctx context.Context, restaurantID string, limit int64) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.FindByRestaurant(ctx, restaurantID, limit)
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	o, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", o.Status, status)
	}

	updated, err := s.Repo.Update(ctx, id, bson.M{
		"status":     status,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("order status changed",
		zap.String("order_number", updated.OrderNumber),
		zap.String("from", o.Status),
		zap.String("to", status))
	return updated, nil
}

func (s *OrderServiceImpl) MarkPaid(ctx context.Context, id string) (*Order, error) {
	return s.Repo.Update(ctx, id, bson.M{
		"payment_status": PaymentPaid,
		"updated_at":     time.Now(),
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
