package restaurant

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerType tags restaurant records in the files store
const OwnerType = "restaurant"

const (
	CollectionLogo    = "logo"
	CollectionGallery = "gallery"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
	StatusDraft  = "draft"
)

// GeoPoint is a GeoJSON point, coordinates are [longitude, latitude]
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

type Restaurant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location    *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Cuisines    []string           `bson:"cuisines,omitempty" json:"cuisines,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Featured    bool               `bson:"featured" json:"featured"`
	Rating      float64            `bson:"rating" json:"rating"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type Resource struct {
	*Restaurant
	LogoURL string `json:"logo_url,omitempty"`
}
