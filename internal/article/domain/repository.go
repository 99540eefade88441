package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Category      string
	Status        string
	Query         string
	PublishedOnly bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, article *Article) error
	Save(ctx context.Context, db *gorm.DB, article *Article) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Article, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Article, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Article, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
