package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, advertiser *domain.Advertiser) error {
	return db.WithContext(ctx).Create(advertiser).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, advertiser *domain.Advertiser) error {
	return db.WithContext(ctx).Save(advertiser).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Advertiser, error) {
	var advertiser domain.Advertiser
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&advertiser).Error
	if err != nil {
		return nil, err
	}
	if advertiser.ID == 0 {
		return nil, nil
	}
	return &advertiser, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Advertiser, error) {
	var advertisers []*domain.Advertiser
	stmt := db.WithContext(ctx).Model(&domain.Advertiser{})
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
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
		Find(&advertisers).Error
	if err != nil {
		return nil, err
	}
	return advertisers, nil
}

func (r *repo) UpdateBarcodeLine(ctx context.Context, db *gorm.DB, id snowflake.ID, line string) error {
	return db.WithContext(ctx).
		Model(&domain.Advertiser{}).
		Where("id = ?", id).
		Update("billing_barcode_line", line).Error
}
