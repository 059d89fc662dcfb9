package service

import (
	"context"

	"article-api/internal/domain"
	"article-api/internal/query"
	"article-api/internal/validator"
)

// ArticleInput is the write shape for creating an article. Server-derived
// fields (id, slug, author, view_count, timestamps) are not accepted.
type ArticleInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Status   string `json:"status"`
	Featured bool   `json:"featured"`
	Tags     string `json:"tags"`
}

// ArticleUpdate is the write shape for updates; nil fields are left
// unchanged, which makes PATCH partial updates fall out naturally.
type ArticleUpdate struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Excerpt  *string `json:"excerpt"`
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
	Tags     *string `json:"tags"`
}

// ArticleList is one page of a filtered listing.
type ArticleList struct {
	Articles []domain.Article
	Total    int
	Page     query.Page
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ArticleServiceInterface defines the article operations consumed by
// the HTTP layer.
type ArticleServiceInterface interface {
	Create(ctx context.Context, p domain.Principal, input ArticleInput) (*domain.Article, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Article, error)
	Update(ctx context.Context, p domain.Principal, id string, input ArticleUpdate) (*domain.Article, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	List(ctx context.Context, p domain.Principal, filter query.Filter, page query.Page) (*ArticleList, error)
	ListOwn(ctx context.Context, p domain.Principal, filter query.Filter, page query.Page) (*ArticleList, error)
	ToggleFeatured(ctx context.Context, p domain.Principal, id string) (*domain.Article, error)
	Stats(ctx context.Context, p domain.Principal) (*domain.Stats, error)
}

// AuthServiceInterface defines the account operations consumed by the
// HTTP layer.
type AuthServiceInterface interface {
	Register(ctx context.Context, reg validator.Registration) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
