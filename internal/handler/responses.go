package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"article-api/internal/derive"
	"article-api/internal/domain"
	"article-api/internal/logger"
	"article-api/internal/middleware"
)

// AuthorResponse is the public author summary in API responses.
type AuthorResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// ArticleListItem is the list shape: everything but the content body.
type ArticleListItem struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     string         `json:"excerpt"`
	Author      AuthorResponse `json:"author"`
	Status      string         `json:"status"`
	Featured    bool           `json:"featured"`
	ViewCount   int            `json:"view_count"`
	Tags        string         `json:"tags"`
	TagsList    []string       `json:"tags_list"`
	ReadingTime int            `json:"reading_time"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	PublishedAt *string        `json:"published_at"`
}

// ArticleDetail is the detail shape: the list shape plus the body and
// body-derived extras.
type ArticleDetail struct {
	ArticleListItem
	Content     string `json:"content"`
	WordCount   int    `json:"word_count"`
	IsPublished bool   `json:"is_published"`
}

// PageResponse is the pagination envelope for list endpoints.
type PageResponse struct {
	Count    int               `json:"count"`
	Next     *int              `json:"next"`
	Previous *int              `json:"previous"`
	Results  []ArticleListItem `json:"results"`
}

func toAuthorResponse(a *domain.Author) AuthorResponse {
	if a == nil {
		return AuthorResponse{}
	}
	return AuthorResponse{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
	}
}

func toListItem(a *domain.Article) ArticleListItem {
	item := ArticleListItem{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		Author:      toAuthorResponse(a.Author),
		Status:      a.Status,
		Featured:    a.Featured,
		ViewCount:   a.ViewCount,
		Tags:        a.Tags,
		TagsList:    derive.TagList(a.Tags),
		ReadingTime: derive.ReadingTime(a.Content),
		CreatedAt:   a.CreatedAt.Format(TimeFormat),
		UpdatedAt:   a.UpdatedAt.Format(TimeFormat),
	}
	if item.TagsList == nil {
		item.TagsList = []string{}
	}
	if a.PublishedAt != nil {
		published := a.PublishedAt.Format(TimeFormat)
		item.PublishedAt = &published
	}
	return item
}

func toDetail(a *domain.Article) ArticleDetail {
	return ArticleDetail{
		ArticleListItem: toListItem(a),
		Content:         a.Content,
		WordCount:       derive.WordCount(a.Content),
		IsPublished:     a.IsPublished(),
	}
}

// respondError maps the domain error taxonomy to HTTP responses in one
// place. Validation errors surface per-field details; anything
// unrecognized is a logged 500.
func respondError(c *gin.Context, err error) {
	var ve validation.Errors
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidPage):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid page"})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
	case errors.Is(err, domain.ErrSlugConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "could not allocate a unique slug"})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
