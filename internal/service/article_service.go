package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"article-api/internal/derive"
	"article-api/internal/domain"
	"article-api/internal/logger"
	"article-api/internal/metrics"
	"article-api/internal/policy"
	"article-api/internal/query"
	"article-api/internal/repository"
	"article-api/internal/validator"
)

// MaxSlugAttempts bounds the disambiguation retries before a creation
// fails with a conflict.
const MaxSlugAttempts = 50

// ArticleService orchestrates derivation, permissions, and storage for
// article operations.
type ArticleService struct {
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	validator   *validator.Validator
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	v *validator.Validator,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		validator:   v,
	}
}

// Create builds a new article from the write shape: the acting
// principal becomes the author, slug/excerpt/tags are derived, and a
// colliding slug is retried with numeric suffixes against the store's
// unique constraint.
func (s *ArticleService) Create(ctx context.Context, p domain.Principal, input ArticleInput) (*domain.Article, error) {
	if !p.Authenticated {
		return nil, domain.ErrUnauthenticated
	}

	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}

	article := &domain.Article{
		ID:       uuid.New().String(),
		Title:    input.Title,
		Content:  input.Content,
		Excerpt:  input.Excerpt,
		AuthorID: p.ID,
		Status:   status,
		Featured: input.Featured,
		Tags:     derive.NormalizeTags(input.Tags),
	}
	if article.Excerpt == "" {
		article.Excerpt = derive.Excerpt(article.Content)
	}
	if article.Status == domain.StatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.validator.ValidateArticle(article); err != nil {
		return nil, err
	}

	base := derive.Slug(article.Title)
	article.Slug = base
	for attempt := 2; ; attempt++ {
		err := s.articleRepo.Create(ctx, article)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrSlugConflict) {
			return nil, err
		}
		if attempt > MaxSlugAttempts {
			logger.ErrorContext(ctx, "slug disambiguation exhausted",
				slog.String("slug", base))
			return nil, domain.ErrSlugConflict
		}
		metrics.SlugRetries.Inc()
		article.Slug = derive.SlugWithSuffix(base, attempt)
	}

	metrics.ArticlesCreated.WithLabelValues(article.Status).Inc()

	if err := s.attachAuthor(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Get retrieves an article for the principal. Articles the principal
// may not see surface as not-found. A qualifying retrieval increments
// the view counter atomically in the store.
func (s *ArticleService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(p, article) {
		return nil, domain.ErrNotFound
	}

	if policy.CountsView(p, article) {
		count, err := s.articleRepo.IncrementViewCount(ctx, id)
		if err != nil {
			return nil, err
		}
		article.ViewCount = count
		metrics.ArticleViews.Inc()
	}

	return article, nil
}

// Update applies a (possibly partial) write shape. The slug, author,
// and view count never change, and the first transition to published
// stamps PublishedAt exactly once.
func (s *ArticleService) Update(ctx context.Context, p domain.Principal, id string, input ArticleUpdate) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(p, article) {
		return nil, domain.ErrNotFound
	}
	if !policy.CanModify(p, article) {
		if !p.Authenticated {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.Excerpt != nil {
		article.Excerpt = *input.Excerpt
	}
	if input.Featured != nil {
		article.Featured = *input.Featured
	}
	if input.Tags != nil {
		article.Tags = derive.NormalizeTags(*input.Tags)
	}
	if input.Status != nil {
		article.Status = *input.Status
	}
	if article.Excerpt == "" {
		article.Excerpt = derive.Excerpt(article.Content)
	}
	if article.Status == domain.StatusPublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.validator.ValidateArticle(article); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article. Invisible articles mask as not-found;
// visible but unowned ones are forbidden.
func (s *ArticleService) Delete(ctx context.Context, p domain.Principal, id string) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanView(p, article) {
		return domain.ErrNotFound
	}
	if !policy.CanModify(p, article) {
		if !p.Authenticated {
			return domain.ErrUnauthenticated
		}
		return domain.ErrForbidden
	}
	return s.articleRepo.Delete(ctx, id)
}

// List returns one page of articles matching the filter, under the
// principal's visibility.
func (s *ArticleService) List(ctx context.Context, p domain.Principal, filter query.Filter, page query.Page) (*ArticleList, error) {
	return s.list(ctx, filter, policy.VisibilityFor(p), page)
}

// ListOwn returns the principal's own articles in every status,
// bypassing the public visibility predicate.
func (s *ArticleService) ListOwn(ctx context.Context, p domain.Principal, filter query.Filter, page query.Page) (*ArticleList, error) {
	if !p.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	filter.Author = p.Username
	return s.list(ctx, filter, query.Visibility{All: true}, page)
}

func (s *ArticleService) list(ctx context.Context, filter query.Filter, vis query.Visibility, page query.Page) (*ArticleList, error) {
	// A non-positive page never touches the store; pages beyond the end
	// are validated against the total below.
	if page.Number < 1 {
		return nil, domain.ErrInvalidPage
	}

	articles, total, err := s.articleRepo.List(ctx, filter, vis, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if err := page.Validate(total); err != nil {
		return nil, err
	}

	return &ArticleList{Articles: articles, Total: total, Page: page}, nil
}

// ToggleFeatured flips the featured flag, staff only.
func (s *ArticleService) ToggleFeatured(ctx context.Context, p domain.Principal, id string) (*domain.Article, error) {
	if !p.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	if !policy.CanToggleFeatured(p) {
		return nil, domain.ErrForbidden
	}

	if _, err := s.articleRepo.ToggleFeatured(ctx, id); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(ctx, id)
}

// Stats aggregates article counts over the principal's visible set.
func (s *ArticleService) Stats(ctx context.Context, p domain.Principal) (*domain.Stats, error) {
	principalID := ""
	if p.Authenticated {
		principalID = p.ID
	}
	return s.articleRepo.Stats(ctx, policy.VisibilityFor(p), principalID)
}

// attachAuthor fills the author summary on a freshly inserted article.
func (s *ArticleService) attachAuthor(ctx context.Context, article *domain.Article) error {
	user, err := s.userRepo.GetByID(ctx, article.AuthorID)
	if err != nil {
		return fmt.Errorf("load author: %w", err)
	}
	article.Author = user.Summary()
	return nil
}
