package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Article is a portal news story. Slug is derived from the title on
// create and kept stable afterwards so published URLs never break.
type Article struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Title    string       `gorm:"not null" json:"title"`
	Slug     string       `gorm:"uniqueIndex;not null" json:"slug"`
	Summary  string       `gorm:"type:text" json:"summary"`
	Body     string       `gorm:"type:text" json:"body"`
	Category string       `gorm:"type:text;index" json:"category"`
	CoverURL string       `gorm:"column:cover_url;type:text" json:"cover_url"`
	Status   Status       `gorm:"type:text;not null;default:'draft';index" json:"status"`

	AuthorID    snowflake.ID `gorm:"column:author_id;index" json:"author_id"`
	PublishedAt *time.Time   `gorm:"column:published_at" json:"published_at,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Article) TableName() string { return "articles" }

func (a Article) Published() bool { return a.Status == StatusPublished }
