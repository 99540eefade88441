package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, article *domain.Article) error {
	return db.WithContext(ctx).Create(article).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, article *domain.Article) error {
	return db.WithContext(ctx).Save(article).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Article, error) {
	var article domain.Article
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&article).Error
	if err != nil {
		return nil, err
	}
	if article.ID == 0 {
		return nil, nil
	}
	return &article, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Article, error) {
	var article domain.Article
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		Limit(1).
		Find(&article).Error
	if err != nil {
		return nil, err
	}
	if article.ID == 0 {
		return nil, nil
	}
	return &article, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Article, error) {
	var articles []*domain.Article
	stmt := db.WithContext(ctx).Model(&domain.Article{})
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.PublishedOnly {
		stmt = stmt.Where("status = ?", domain.StatusPublished)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		stmt = stmt.Where("title LIKE ? OR summary LIKE ?", like, like)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err == nil && cursor != nil {
			id, _ := snowflake.ParseString(cursor.ID)
			if ts, terr := time.Parse(time.RFC3339Nano, cursor.CreatedAt); terr == nil {
				stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)", ts, ts, int64(id))
			} else {
				stmt = stmt.Where("id < ?", int64(id))
			}
		}
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}

	err := stmt.
		Order("created_at desc, id desc").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Article{}).Error
}
