package settings

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SettingsType string

const (
	SettingsTypeGeneral SettingsType = "general"
	SettingsTypeUploads SettingsType = "uploads"
)

// Settings is a single-document-per-type configuration store
type Settings struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      SettingsType       `bson:"type" json:"type"`
	General   *GeneralConfig     `bson:"general,omitempty" json:"general,omitempty"`
	Uploads   *UploadsConfig     `bson:"uploads,omitempty" json:"uploads,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type GeneralConfig struct {
	AppName      string `bson:"app_name" json:"app_name"`
	SupportEmail string `bson:"support_email" json:"support_email"`
	Currency     string `bson:"currency" json:"currency"`
	Timezone     string `bson:"timezone" json:"timezone"`
}

// UploadsConfig governs what the file service accepts. AllowedTypes uses
// the mime categories (image, document, video); empty accepts everything.
type UploadsConfig struct {
	MaxFileSizeMB int      `bson:"max_file_size_mb" json:"max_file_size_mb"`
	AllowedTypes  []string `bson:"allowed_types" json:"allowed_types"`
	Optimize      bool     `bson:"optimize" json:"optimize"`
}
