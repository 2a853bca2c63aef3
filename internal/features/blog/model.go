package blog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerType tags blog records in the files store
const OwnerType = "blog"

// CollectionCover holds the single cover image of a post
const CollectionCover = "cover"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Excerpt     string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content     string             `bson:"content" json:"content"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Status      string             `bson:"status" json:"status"`
	AuthorID    string             `bson:"author_id,omitempty" json:"author_id,omitempty"`
	PublishedAt *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type Resource struct {
	*Blog
	CoverURL string `json:"cover_url,omitempty"`
}
