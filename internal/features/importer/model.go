package importer

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EntityProducts = "products"
	EntityBlogs    = "blogs"
)

const (
	JobStatusCompleted = "completed"
	JobStatusPartial   = "partial"
	JobStatusFailed    = "failed"
)

// ImportJob records one import run and its outcome
type ImportJob struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Entity    string             `bson:"entity" json:"entity"`
	Filename  string             `bson:"filename" json:"filename"`
	Status    string             `bson:"status" json:"status"`
	TotalRows int                `bson:"total_rows" json:"total_rows"`
	Imported  int                `bson:"imported" json:"imported"`
	Failed    int                `bson:"failed" json:"failed"`
	Errors    []string           `bson:"errors,omitempty" json:"errors,omitempty"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Preview is what the client sees before committing an import: the parsed
// headers, a handful of sample rows and the row count.
type Preview struct {
	Headers    []string            `json:"headers"`
	SampleRows []map[string]string `json:"sample_rows"`
	TotalRows  int                 `json:"total_rows"`
}
