package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusAnswered Status = "answered"
	StatusClosed   Status = "closed"
)

// Ticket is a reader or advertiser message to the newsroom. Replies
// live in their own table so a thread keeps its order.
type Ticket struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Subject string       `gorm:"not null" json:"subject"`
	Body    string       `gorm:"type:text;not null" json:"body"`
	Status  Status       `gorm:"type:text;not null;default:'open';index" json:"status"`

	ReporterName  string `gorm:"column:reporter_name;type:text" json:"reporter_name"`
	ReporterEmail string `gorm:"column:reporter_email;type:text" json:"reporter_email"`
	ReporterPhone string `gorm:"column:reporter_phone;type:text" json:"reporter_phone"`

	Replies []Reply `gorm:"foreignKey:TicketID" json:"replies,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Ticket) TableName() string { return "tickets" }

// Reply is a single message in a ticket thread.
type Reply struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	TicketID snowflake.ID `gorm:"column:ticket_id;index;not null" json:"ticket_id"`
	AuthorID snowflake.ID `gorm:"column:author_id" json:"author_id"`
	Body     string       `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Reply) TableName() string { return "ticket_replies" }
