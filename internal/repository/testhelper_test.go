package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"article-api/internal/domain"
	"article-api/internal/repository"
)

// TestDB holds the test database connection and container.
type TestDB struct {
	Pool      *pgxpool.Pool
	Container testcontainers.Container
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL container and applies migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to get connection string: %v", err)
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to create migrate instance: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}
	m.Close()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to ping database: %v", err)
	}

	return &TestDB{Pool: pool, Container: pgContainer, ConnStr: connStr}
}

// Cleanup closes the connection pool and terminates the container.
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if tdb.Pool != nil {
		tdb.Pool.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// TruncateTables clears tables between tests for isolation.
func (tdb *TestDB) TruncateTables(t *testing.T, tables ...string) {
	t.Helper()
	ctx := context.Background()
	for _, table := range tables {
		if _, err := tdb.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}

// seedUser inserts an account directly and returns it.
func seedUser(t *testing.T, pool *pgxpool.Pool, username string, staff bool) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:          uuid.New().String(),
		Username:    username,
		Email:       username + "@example.com",
		DisplayName: username,
		Staff:       staff,
	}
	userRepo := repository.NewPostgresUserRepository(pool)
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}

// seedArticle inserts an article through the repository and returns it.
func seedArticle(t *testing.T, pool *pgxpool.Pool, authorID, title, slug, status string, mutate func(*domain.Article)) *domain.Article {
	t.Helper()
	article := &domain.Article{
		ID:       uuid.New().String(),
		Title:    title,
		Slug:     slug,
		Content:  "Body for " + title + " with enough words in it.",
		Excerpt:  "Excerpt for " + title,
		AuthorID: authorID,
		Status:   status,
	}
	if status == domain.StatusPublished {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}
	if mutate != nil {
		mutate(article)
	}
	articleRepo := repository.NewPostgresArticleRepository(pool)
	if err := articleRepo.Create(context.Background(), article); err != nil {
		t.Fatalf("Failed to seed article %s: %v", slug, err)
	}
	return article
}
