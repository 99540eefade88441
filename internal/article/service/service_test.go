package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/repository"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/clock"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Article{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  repository.Provide(),
		Clock: fake,
	})
	return svc, fake
}

func TestCreateDerivesSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, domain.CreateArticleRequest{
		Title:    "Chuvas alagam o centro de Lagoa Formosa",
		Category: "cidade",
	})
	require.NoError(t, err)
	assert.Equal(t, "chuvas-alagam-o-centro-de-lagoa-formosa", article.Slug)
	assert.Equal(t, domain.StatusDraft, article.Status)
	assert.Nil(t, article.PublishedAt)
}

func TestCreateDuplicateTitleGetsSuffixedSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateArticleRequest{Title: "Festa do Feijao"})
	require.NoError(t, err)

	second, err := svc.Create(ctx, domain.CreateArticleRequest{Title: "Festa do Feijao"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "festa-do-feijao-")
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateArticleRequest{Title: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
}

func TestPublishAndUnpublish(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, domain.CreateArticleRequest{Title: "Obras na MG-230"})
	require.NoError(t, err)

	fake.Advance(2 * time.Hour)
	published, err := svc.Publish(ctx, article.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, fake.Now(), *published.PublishedAt)

	// Publishing again keeps the original timestamp.
	fake.Advance(time.Hour)
	again, err := svc.Publish(ctx, article.ID.String())
	require.NoError(t, err)
	assert.Equal(t, *published.PublishedAt, *again.PublishedAt)

	draft, err := svc.Unpublish(ctx, article.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)
}

func TestGetBySlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateArticleRequest{Title: "Vacinacao contra a gripe"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, domain.GetArticleRequest{Slug: created.Slug})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, domain.GetArticleRequest{Slug: "nao-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPublishedOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, domain.CreateArticleRequest{Title: "Rascunho"})
	require.NoError(t, err)

	published, err := svc.Create(ctx, domain.CreateArticleRequest{Title: "No ar"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, published.ID.String())
	require.NoError(t, err)

	page, err := svc.List(ctx, domain.ListArticleRequest{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, published.ID, page.Articles[0].ID)

	all, err := svc.List(ctx, domain.ListArticleRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Articles, 2)
	_ = draft
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, domain.CreateArticleRequest{Title: "Nota curta"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, article.ID.String()))

	_, err = svc.Get(ctx, domain.GetArticleRequest{ID: article.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
