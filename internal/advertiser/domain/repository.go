package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Name   string
	Active *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, advertiser *Advertiser) error
	Save(ctx context.Context, db *gorm.DB, advertiser *Advertiser) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Advertiser, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Advertiser, error)
	UpdateBarcodeLine(ctx context.Context, db *gorm.DB, id snowflake.ID, line string) error
}
