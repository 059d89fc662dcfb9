package repository

import (
	"context"

	"article-api/internal/domain"
	"article-api/internal/query"
)

// ArticleRepository defines methods for article data access.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter query.Filter, vis query.Visibility, limit, offset int) ([]domain.Article, int, error)
	IncrementViewCount(ctx context.Context, id string) (int, error)
	ToggleFeatured(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context, vis query.Visibility, principalID string) (*domain.Stats, error)
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
