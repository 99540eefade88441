package domain

import (
	"context"
	"errors"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
)

type CreateArticleRequest struct {
	Title    string
	Summary  string
	Body     string
	Category string
	CoverURL string
	AuthorID string
}

type UpdateArticleRequest struct {
	ID string

	Title    *string
	Summary  *string
	Body     *string
	Category *string
	CoverURL *string
}

type GetArticleRequest struct {
	ID   string
	Slug string
}

type ListArticleRequest struct {
	PageToken string
	PageSize  int
	Category  string
	Status    string
	Query     string
	// PublishedOnly is forced on for the public surface; admin listings
	// leave it off to see drafts.
	PublishedOnly bool
}

type ListArticleResponse struct {
	pagination.PageInfo
	Articles []Article `json:"articles"`
}

type Service interface {
	Create(ctx context.Context, req CreateArticleRequest) (Article, error)
	Update(ctx context.Context, req UpdateArticleRequest) (Article, error)
	Publish(ctx context.Context, id string) (Article, error)
	Unpublish(ctx context.Context, id string) (Article, error)
	Get(ctx context.Context, req GetArticleRequest) (Article, error)
	List(ctx context.Context, req ListArticleRequest) (ListArticleResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidTitle = errors.New("invalid_title")
	ErrNotFound     = errors.New("not_found")
	ErrSlugTaken    = errors.New("slug_already_exists")
)
