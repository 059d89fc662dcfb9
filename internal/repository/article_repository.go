package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"article-api/internal/domain"
	"article-api/internal/query"
)

// uniqueViolation is the PostgreSQL error code for unique-constraint
// violations.
const uniqueViolation = "23505"

// articleColumns is the select list shared by every article read,
// including the joined author summary.
const articleColumns = `
	a.id, a.title, a.slug, a.content, a.excerpt, a.author_id,
	a.status, a.featured, a.view_count, a.tags,
	a.created_at, a.updated_at, a.published_at,
	u.id, u.username, u.display_name`

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

// Create inserts the article. The store's unique index on slug is the
// authority for collisions: a conflicting insert returns
// domain.ErrSlugConflict and the caller retries with a new suffix.
func (r *PostgresArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO articles (id, title, slug, content, excerpt, author_id, status, featured, tags, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`, a.ID, a.Title, a.Slug, a.Content, a.Excerpt, a.AuthorID, a.Status, a.Featured, a.Tags, a.PublishedAt).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID fetches an article with its author summary.
func (r *PostgresArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.id = $1
	`, id)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// Update persists the mutable article fields. Slug, author, and
// view_count are never written here.
func (r *PostgresArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE articles
		SET title = $2, content = $3, excerpt = $4, status = $5,
		    featured = $6, tags = $7, published_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, a.ID, a.Title, a.Content, a.Excerpt, a.Status, a.Featured, a.Tags, a.PublishedAt).
		Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Delete removes the article permanently.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List applies the filter and visibility predicate and returns one page
// of articles plus the total count of the filtered set. The count is
// taken from the same statement as the rows (COUNT(*) OVER()), so both
// always describe the same snapshot.
func (r *PostgresArticleRepository) List(ctx context.Context, f query.Filter, vis query.Visibility, limit, offset int) ([]domain.Article, int, error) {
	sql, args := buildListQuery(f, vis, limit, offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	total := 0
	for rows.Next() {
		a, n, err := scanArticleWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		total = n
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("read articles: %w", err)
	}

	// An empty page beyond the data carries no window total; fall back
	// to a bare count so page validation still sees the real size.
	if len(articles) == 0 {
		countSQL, countArgs := buildCountQuery(f, vis)
		if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count articles: %w", err)
		}
	}

	return articles, total, nil
}

// IncrementViewCount adds one view as a single atomic update so
// concurrent retrievals never lose increments.
func (r *PostgresArticleRepository) IncrementViewCount(ctx context.Context, id string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		UPDATE articles SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment view count: %w", err)
	}
	return count, nil
}

// ToggleFeatured flips the featured flag and returns the new value.
func (r *PostgresArticleRepository) ToggleFeatured(ctx context.Context, id string) (bool, error) {
	var featured bool
	err := r.pool.QueryRow(ctx, `
		UPDATE articles SET featured = NOT featured, updated_at = NOW() WHERE id = $1
		RETURNING featured
	`, id).Scan(&featured)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("toggle featured: %w", err)
	}
	return featured, nil
}

// Stats aggregates counts over the articles visible to the requester.
// Per-requester counts are included when principalID is non-empty.
func (r *PostgresArticleRepository) Stats(ctx context.Context, vis query.Visibility, principalID string) (*domain.Stats, error) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE a.status = 'published'),
		       COUNT(*) FILTER (WHERE a.status = 'draft'),
		       COUNT(*) FILTER (WHERE a.status = 'archived'),
		       COUNT(*) FILTER (WHERE a.featured),
		       COALESCE(SUM(a.view_count), 0)`)

	if principalID != "" {
		args = append(args, principalID)
		b.WriteString(`,
		       COUNT(*) FILTER (WHERE a.author_id = $1),
		       COUNT(*) FILTER (WHERE a.author_id = $1 AND a.status = 'published'),
		       COUNT(*) FILTER (WHERE a.author_id = $1 AND a.status = 'draft')`)
	}

	b.WriteString(`
		FROM articles a`)
	appendVisibility(&b, &args, vis)

	stats := &domain.Stats{}
	row := r.pool.QueryRow(ctx, b.String(), args...)

	if principalID != "" {
		var mine, minePublished, mineDrafts int
		err := row.Scan(
			&stats.TotalArticles, &stats.PublishedArticles, &stats.DraftArticles,
			&stats.ArchivedArticles, &stats.FeaturedArticles, &stats.TotalViews,
			&mine, &minePublished, &mineDrafts,
		)
		if err != nil {
			return nil, fmt.Errorf("article stats: %w", err)
		}
		stats.MyArticles = &mine
		stats.MyPublished = &minePublished
		stats.MyDrafts = &mineDrafts
		return stats, nil
	}

	err := row.Scan(
		&stats.TotalArticles, &stats.PublishedArticles, &stats.DraftArticles,
		&stats.ArchivedArticles, &stats.FeaturedArticles, &stats.TotalViews,
	)
	if err != nil {
		return nil, fmt.Errorf("article stats: %w", err)
	}
	return stats, nil
}

// buildListQuery composes the filtered, ordered, paginated select.
func buildListQuery(f query.Filter, vis query.Visibility, limit, offset int) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(`
		SELECT ` + articleColumns + `, COUNT(*) OVER() AS total_count
		FROM articles a
		JOIN users u ON u.id = a.author_id`)

	appendPredicates(&b, &args, f, vis)

	dir := "ASC"
	if f.OrderDesc {
		dir = "DESC"
	}
	field := f.OrderField
	if field == "" {
		field = "created_at"
		dir = "DESC"
	}
	// Secondary key keeps pagination stable when the order field ties.
	fmt.Fprintf(&b, "\n\t\tORDER BY a.%s %s, a.id ASC", field, dir)

	args = append(args, limit)
	fmt.Fprintf(&b, "\n\t\tLIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&b, " OFFSET $%d", len(args))

	return b.String(), args
}

// buildCountQuery composes the bare count for the same predicate set.
func buildCountQuery(f query.Filter, vis query.Visibility) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(`
		SELECT COUNT(*)
		FROM articles a
		JOIN users u ON u.id = a.author_id`)

	appendPredicates(&b, &args, f, vis)
	return b.String(), args
}

// appendPredicates writes the WHERE clause: the visibility predicate
// first, then every user-supplied constraint ANDed together.
func appendPredicates(b *strings.Builder, args *[]interface{}, f query.Filter, vis query.Visibility) {
	var conds []string

	addArg := func(v interface{}) int {
		*args = append(*args, v)
		return len(*args)
	}

	if !vis.All {
		if vis.OwnerID != "" {
			n := addArg(vis.OwnerID)
			conds = append(conds, fmt.Sprintf("(a.status = 'published' OR a.author_id = $%d)", n))
		} else {
			conds = append(conds, "a.status = 'published'")
		}
	}

	if f.Search != "" {
		n := addArg("%" + escapeLike(f.Search) + "%")
		conds = append(conds, fmt.Sprintf(
			"(a.title ILIKE $%d OR a.content ILIKE $%d OR a.tags ILIKE $%d OR u.username ILIKE $%d)",
			n, n, n, n))
	}
	if f.Title != "" {
		n := addArg("%" + escapeLike(f.Title) + "%")
		conds = append(conds, fmt.Sprintf("a.title ILIKE $%d", n))
	}
	if f.Content != "" {
		n := addArg("%" + escapeLike(f.Content) + "%")
		conds = append(conds, fmt.Sprintf("a.content ILIKE $%d", n))
	}
	if f.Author != "" {
		n := addArg(f.Author)
		conds = append(conds, fmt.Sprintf("u.username = $%d", n))
	}
	if f.Status != "" {
		n := addArg(f.Status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", n))
	}
	if f.Featured != nil {
		n := addArg(*f.Featured)
		conds = append(conds, fmt.Sprintf("a.featured = $%d", n))
	}
	if len(f.Tags) > 0 {
		var tagConds []string
		for _, tag := range f.Tags {
			n := addArg("%," + escapeLike(tag) + ",%")
			tagConds = append(tagConds, fmt.Sprintf("(',' || a.tags || ',') ILIKE $%d", n))
		}
		conds = append(conds, "("+strings.Join(tagConds, " OR ")+")")
	}
	if f.CreatedAfter != nil {
		n := addArg(*f.CreatedAfter)
		conds = append(conds, fmt.Sprintf("a.created_at >= $%d", n))
	}
	if f.CreatedBefore != nil {
		n := addArg(*f.CreatedBefore)
		conds = append(conds, fmt.Sprintf("a.created_at <= $%d", n))
	}
	// NULL published_at never satisfies a bound, so unpublished articles
	// drop out of published-range queries without a special case.
	if f.PublishedAfter != nil {
		n := addArg(*f.PublishedAfter)
		conds = append(conds, fmt.Sprintf("a.published_at >= $%d", n))
	}
	if f.PublishedBefore != nil {
		n := addArg(*f.PublishedBefore)
		conds = append(conds, fmt.Sprintf("a.published_at <= $%d", n))
	}
	if f.MinViews != nil {
		n := addArg(*f.MinViews)
		conds = append(conds, fmt.Sprintf("a.view_count >= $%d", n))
	}
	if f.MaxViews != nil {
		n := addArg(*f.MaxViews)
		conds = append(conds, fmt.Sprintf("a.view_count <= $%d", n))
	}

	if len(conds) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(conds, "\n\t\t  AND "))
	}
}

// escapeLike escapes LIKE metacharacters so user-supplied values match
// literally inside ILIKE patterns.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// appendVisibility writes only the visibility predicate (used by Stats,
// which has no user-supplied filters and no author join).
func appendVisibility(b *strings.Builder, args *[]interface{}, vis query.Visibility) {
	if vis.All {
		return
	}
	if vis.OwnerID != "" {
		*args = append(*args, vis.OwnerID)
		fmt.Fprintf(b, "\n\t\tWHERE (a.status = 'published' OR a.author_id = $%d)", len(*args))
		return
	}
	b.WriteString("\n\t\tWHERE a.status = 'published'")
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	var author domain.Author
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.AuthorID,
		&a.Status, &a.Featured, &a.ViewCount, &a.Tags,
		&a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
		&author.ID, &author.Username, &author.DisplayName,
	)
	if err != nil {
		return nil, err
	}
	a.Author = &author
	return &a, nil
}

func scanArticleWithTotal(row pgx.Row) (*domain.Article, int, error) {
	var a domain.Article
	var author domain.Author
	var total int
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.AuthorID,
		&a.Status, &a.Featured, &a.ViewCount, &a.Tags,
		&a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
		&author.ID, &author.Username, &author.DisplayName,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}
	a.Author = &author
	return &a, total, nil
}
