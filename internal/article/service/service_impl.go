package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/clock"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("article.service"),
		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateArticleRequest) (domain.Article, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Article{}, domain.ErrInvalidTitle
	}

	id := s.genID.Generate()
	articleSlug, err := s.uniqueSlug(ctx, title, id)
	if err != nil {
		return domain.Article{}, err
	}

	var authorID snowflake.ID
	if strings.TrimSpace(req.AuthorID) != "" {
		authorID, _ = snowflake.ParseString(req.AuthorID)
	}

	now := s.clock.Now()
	article := domain.Article{
		ID:        id,
		Title:     title,
		Slug:      articleSlug,
		Summary:   strings.TrimSpace(req.Summary),
		Body:      req.Body,
		Category:  strings.TrimSpace(req.Category),
		CoverURL:  strings.TrimSpace(req.CoverURL),
		Status:    domain.StatusDraft,
		AuthorID:  authorID,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

// uniqueSlug derives the URL slug from the title, falling back to a
// suffixed form when another article already claimed it.
func (s *Service) uniqueSlug(ctx context.Context, title string, id snowflake.ID) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = id.String()
	}

	existing, err := s.repo.FindBySlug(ctx, s.db, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}

	tail := id.String()
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return fmt.Sprintf("%s-%s", base, tail), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateArticleRequest) (domain.Article, error) {
	item, err := s.find(ctx, req.ID)
	if err != nil {
		return domain.Article{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Article{}, domain.ErrInvalidTitle
		}
		item.Title = title
	}
	if req.Summary != nil {
		item.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.Body != nil {
		item.Body = *req.Body
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.CoverURL != nil {
		item.CoverURL = strings.TrimSpace(*req.CoverURL)
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.Article{}, err
	}
	return *item, nil
}

func (s *Service) Publish(ctx context.Context, id string) (domain.Article, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	if item.Status == domain.StatusPublished {
		return *item, nil
	}

	now := s.clock.Now()
	item.Status = domain.StatusPublished
	item.PublishedAt = &now
	item.UpdatedAt = now

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.Article{}, err
	}
	s.log.Info("article published",
		zap.String("article_id", item.ID.String()),
		zap.String("slug", item.Slug),
	)
	return *item, nil
}

func (s *Service) Unpublish(ctx context.Context, id string) (domain.Article, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	if item.Status == domain.StatusDraft {
		return *item, nil
	}

	item.Status = domain.StatusDraft
	item.PublishedAt = nil
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.Article{}, err
	}
	return *item, nil
}

func (s *Service) Get(ctx context.Context, req domain.GetArticleRequest) (domain.Article, error) {
	if strings.TrimSpace(req.Slug) != "" {
		item, err := s.repo.FindBySlug(ctx, s.db, strings.TrimSpace(req.Slug))
		if err != nil {
			return domain.Article{}, err
		}
		if item == nil {
			return domain.Article{}, domain.ErrNotFound
		}
		return *item, nil
	}

	item, err := s.find(ctx, req.ID)
	if err != nil {
		return domain.Article{}, err
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListArticleRequest) (domain.ListArticleResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	items, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Category:      strings.TrimSpace(req.Category),
		Status:        strings.TrimSpace(req.Status),
		Query:         strings.TrimSpace(req.Query),
		PublishedOnly: req.PublishedOnly,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListArticleResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(article *domain.Article) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        article.ID.String(),
			CreatedAt: article.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		articles = append(articles, *item)
	}

	resp := domain.ListArticleResponse{Articles: articles}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, item.ID)
}

func (s *Service) find(ctx context.Context, id string) (*domain.Article, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
