package server

import (
	"net/http"

	articledomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/domain"
	"github.com/gin-gonic/gin"
)

type CreateArticleBody struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
	Category string `json:"category"`
	CoverURL string `json:"cover_url"`
}

type UpdateArticleBody struct {
	Title    *string `json:"title"`
	Summary  *string `json:"summary"`
	Body     *string `json:"body"`
	Category *string `json:"category"`
	CoverURL *string `json:"cover_url"`
}

func (s *Server) CreateArticle(c *gin.Context) {
	var body CreateArticleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := articledomain.CreateArticleRequest{
		Title:    body.Title,
		Summary:  body.Summary,
		Body:     body.Body,
		Category: body.Category,
		CoverURL: body.CoverURL,
	}
	if user := currentUser(c); user != nil {
		req.AuthorID = user.ID.String()
	}

	created, err := s.articleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateArticle(c *gin.Context) {
	var body UpdateArticleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.articleSvc.Update(c.Request.Context(), articledomain.UpdateArticleRequest{
		ID:       c.Param("id"),
		Title:    body.Title,
		Summary:  body.Summary,
		Body:     body.Body,
		Category: body.Category,
		CoverURL: body.CoverURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) PublishArticle(c *gin.Context) {
	published, err := s.articleSvc.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, published)
}

func (s *Server) UnpublishArticle(c *gin.Context) {
	draft, err := s.articleSvc.Unpublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (s *Server) GetArticle(c *gin.Context) {
	got, err := s.articleSvc.Get(c.Request.Context(), articledomain.GetArticleRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, got)
}

func (s *Server) DeleteArticle(c *gin.Context) {
	if err := s.articleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ListArticles(c *gin.Context) {
	resp, err := s.articleSvc.List(c.Request.Context(), articledomain.ListArticleRequest{
		PageToken: c.Query("page_token"),
		PageSize:  parseIntDefault(c.Query("page_size"), 20),
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		Query:     c.Query("q"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPublishedArticles(c *gin.Context) {
	resp, err := s.articleSvc.List(c.Request.Context(), articledomain.ListArticleRequest{
		PageToken:     c.Query("page_token"),
		PageSize:      parseIntDefault(c.Query("page_size"), 20),
		Category:      c.Query("category"),
		Query:         c.Query("q"),
		PublishedOnly: true,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetArticleBySlug(c *gin.Context) {
	got, err := s.articleSvc.Get(c.Request.Context(), articledomain.GetArticleRequest{
		Slug: c.Param("slug"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !got.Published() {
		AbortWithError(c, articledomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, got)
}
