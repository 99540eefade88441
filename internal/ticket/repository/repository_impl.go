package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, ticket *domain.Ticket) error {
	return db.WithContext(ctx).Create(ticket).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, ticket *domain.Ticket) error {
	return db.WithContext(ctx).Omit("Replies").Save(ticket).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc")
		}).
		Where("id = ?", id).
		Limit(1).
		Find(&ticket).Error
	if err != nil {
		return nil, err
	}
	if ticket.ID == 0 {
		return nil, nil
	}
	return &ticket, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	stmt := db.WithContext(ctx).Model(&domain.Ticket{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
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
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *repo) InsertReply(ctx context.Context, db *gorm.DB, reply *domain.Reply) error {
	return db.WithContext(ctx).Create(reply).Error
}
