package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusPreparing  = "preparing"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// transitions maps each status to the statuses an order may move to
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusPreparing, StatusCancelled},
	StatusPreparing:  {StatusDelivering},
	StatusDelivering: {StatusCompleted},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
	Total     float64 `bson:"total" json:"total"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber   string             `bson:"order_number" json:"order_number"`
	UserID        string             `bson:"user_id" json:"user_id"`
	RestaurantID  string             `bson:"restaurant_id,omitempty" json:"restaurant_id,omitempty"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Tax           float64            `bson:"tax" json:"tax"`
	DeliveryFee   float64            `bson:"delivery_fee" json:"delivery_fee"`
	Total         float64            `bson:"total" json:"total"`
	Status        string             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
