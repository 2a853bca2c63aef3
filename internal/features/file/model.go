package file

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File is one uploaded asset. An image and its resized variants share a
// single record: every variant blob path is derivable from Path plus the
// variant name.
type File struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OriginalName string             `json:"original_name" bson:"original_name"`
	Filename     string             `json:"filename" bson:"filename"`
	Path         string             `json:"path" bson:"path"`
	Disk         string             `json:"disk" bson:"disk"`
	MimeType     string             `json:"mime_type" bson:"mime_type"`
	Size         int64              `json:"size" bson:"size"`
	OwnerType    string             `json:"owner_type,omitempty" bson:"owner_type,omitempty"`
	OwnerID      string             `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	Collection   string             `json:"collection,omitempty" bson:"collection,omitempty"`
	Order        int                `json:"order" bson:"order"`
	Meta         map[string]any     `json:"meta" bson:"meta"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// File categories derived from the MIME allow-lists
const (
	TypeImage    = "image"
	TypeDocument = "document"
	TypeVideo    = "video"
	TypeOther    = "other"
)

var mimeCategories = map[string][]string{
	TypeImage:    {"image/jpeg", "image/png", "image/gif", "image/webp"},
	TypeDocument: {"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	TypeVideo:    {"video/mp4", "video/mpeg", "video/quicktime"},
}

// ClassifyMime buckets a MIME type into image/document/video/other.
// Parameters like "; charset=..." are ignored.
func ClassifyMime(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))

	for category, types := range mimeCategories {
		for _, t := range types {
			if t == mimeType {
				return category
			}
		}
	}
	return TypeOther
}

func (f *File) IsImage() bool {
	return ClassifyMime(f.MimeType) == TypeImage
}

// Resource is the response shape returned to API callers. The urls block
// carries the named variants only for image records.
type Resource struct {
	ID            string            `json:"id"`
	OriginalName  string            `json:"original_name"`
	Filename      string            `json:"filename"`
	MimeType      string            `json:"mime_type"`
	Size          int64             `json:"size"`
	SizeFormatted string            `json:"size_formatted"`
	Collection    string            `json:"collection,omitempty"`
	Meta          map[string]any    `json:"meta"`
	URLs          map[string]string `json:"urls"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
