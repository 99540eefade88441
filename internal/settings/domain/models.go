package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Settings is the single portal-wide configuration row: site identity
// plus the Pix merchant account used by every generated charge.
type Settings struct {
	ID              int64             `gorm:"primaryKey" json:"-"`
	PortalName      string            `gorm:"type:text;not null" json:"portal_name"`
	ContactEmail    string            `gorm:"type:text" json:"contact_email"`
	PixKey          string            `gorm:"column:pix_key;type:text" json:"pix_key"`
	PixMerchantName string            `gorm:"column:pix_merchant_name;type:text" json:"pix_merchant_name"`
	PixMerchantCity string            `gorm:"column:pix_merchant_city;type:text" json:"pix_merchant_city"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Settings) TableName() string { return "portal_settings" }

// DefaultID is the primary key of the singleton row.
const DefaultID int64 = 1

// PixConfigured reports whether the merchant account can build payloads.
func (s Settings) PixConfigured() bool {
	return s.PixKey != ""
}
