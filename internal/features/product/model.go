package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerType tags product records in the files store
const OwnerType = "product"

// Attachment collections a product carries
const (
	CollectionThumbnail = "thumbnail"
	CollectionGallery   = "gallery"
	CollectionVideos    = "videos"
	CollectionFiles     = "files"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDraft    = "draft"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	SKU         string             `bson:"sku" json:"sku"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	SalePrice   float64            `bson:"sale_price,omitempty" json:"sale_price,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	Status      string             `bson:"status" json:"status"`
	Featured    bool               `bson:"featured" json:"featured"`
	Categories  []string           `bson:"categories,omitempty" json:"categories,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Resource is the API shape of a product with its attachment URLs resolved
type Resource struct {
	*Product
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Gallery      []any  `json:"gallery,omitempty"`
}
