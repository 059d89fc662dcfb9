package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"article-api/internal/domain"
	"article-api/internal/middleware"
	"article-api/internal/query"
	"article-api/internal/service"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articles        service.ArticleServiceInterface
	defaultPageSize int
	maxPageSize     int
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles service.ArticleServiceInterface, defaultPageSize, maxPageSize int) *ArticleHandler {
	return &ArticleHandler{
		articles:        articles,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// List handles GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	values := c.Request.URL.Query()
	h.respondList(c, query.ParseFilter(values), query.ParsePage(values, h.defaultPageSize, h.maxPageSize))
}

// Featured handles GET /api/v1/articles/featured
func (h *ArticleHandler) Featured(c *gin.Context) {
	values := c.Request.URL.Query()
	filter := query.ParseFilter(values)
	featured := true
	filter.Featured = &featured
	filter.Status = domain.StatusPublished

	h.respondList(c, filter, query.ParsePage(values, h.defaultPageSize, h.maxPageSize))
}

// MyArticles handles GET /api/v1/articles/my_articles
func (h *ArticleHandler) MyArticles(c *gin.Context) {
	values := c.Request.URL.Query()
	filter := query.ParseFilter(values)
	page := query.ParsePage(values, h.defaultPageSize, h.maxPageSize)

	list, err := h.articles.ListOwn(c.Request.Context(), middleware.GetPrincipal(c), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(list))
}

// ByAuthor handles GET /api/v1/articles/by_author?author=username
func (h *ArticleHandler) ByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author parameter is required"})
		return
	}

	values := c.Request.URL.Query()
	filter := query.ParseFilter(values)
	filter.Author = author
	filter.Status = domain.StatusPublished

	h.respondList(c, filter, query.ParsePage(values, h.defaultPageSize, h.maxPageSize))
}

// ByTag handles GET /api/v1/articles/by_tag?tag=name
func (h *ArticleHandler) ByTag(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag parameter is required"})
		return
	}

	values := c.Request.URL.Query()
	filter := query.ParseFilter(values)
	filter.Tags = []string{tag}
	filter.Status = domain.StatusPublished

	h.respondList(c, filter, query.ParsePage(values, h.defaultPageSize, h.maxPageSize))
}

func (h *ArticleHandler) respondList(c *gin.Context, filter query.Filter, page query.Page) {
	list, err := h.articles.List(c.Request.Context(), middleware.GetPrincipal(c), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(list))
}

func toPageResponse(list *service.ArticleList) PageResponse {
	next, prev := list.Page.Links(list.Total)
	resp := PageResponse{
		Count:    list.Total,
		Next:     next,
		Previous: prev,
		Results:  make([]ArticleListItem, 0, len(list.Articles)),
	}
	for i := range list.Articles {
		resp.Results = append(resp.Results, toListItem(&list.Articles[i]))
	}
	return resp
}

// Create handles POST /api/v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var input service.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articles.Create(c.Request.Context(), middleware.GetPrincipal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDetail(article))
}

// Get handles GET /api/v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.articles.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDetail(article))
}

// Update handles PUT /api/v1/articles/:id (full update).
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var input service.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}
	update := service.ArticleUpdate{
		Title:    &input.Title,
		Content:  &input.Content,
		Excerpt:  &input.Excerpt,
		Status:   &status,
		Featured: &input.Featured,
		Tags:     &input.Tags,
	}

	article, err := h.articles.Update(c.Request.Context(), middleware.GetPrincipal(c), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDetail(article))
}

// Patch handles PATCH /api/v1/articles/:id (partial update).
func (h *ArticleHandler) Patch(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var update service.ArticleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articles.Update(c.Request.Context(), middleware.GetPrincipal(c), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDetail(article))
}

// Delete handles DELETE /api/v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.articles.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleFeatured handles POST /api/v1/articles/:id/toggle_featured
func (h *ArticleHandler) ToggleFeatured(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.articles.ToggleFeatured(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDetail(article))
}

// Stats handles GET /api/v1/articles/stats
func (h *ArticleHandler) Stats(c *gin.Context) {
	stats, err := h.articles.Stats(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// articleID validates the :id path parameter. A malformed ID can name
// no article, so it reads as not-found rather than a bad request.
func articleID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return "", false
	}
	return id, true
}
