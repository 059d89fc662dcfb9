package domain

import "time"

// Article represents an article entity in the system.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	AuthorID    string     `json:"author_id"`
	Author      *Author    `json:"author,omitempty"`
	Status      string     `json:"status"`
	Featured    bool       `json:"featured"`
	ViewCount   int        `json:"view_count"`
	Tags        string     `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Author is the public summary of an article's author.
type Author struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Article statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidStatuses contains all valid article statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished, StatusArchived}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsPublished reports whether the article is publicly visible.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// Stats holds aggregate article counts. The My* fields are only
// populated for authenticated requesters.
type Stats struct {
	TotalArticles     int  `json:"total_articles"`
	PublishedArticles int  `json:"published_articles"`
	DraftArticles     int  `json:"draft_articles"`
	ArchivedArticles  int  `json:"archived_articles"`
	FeaturedArticles  int  `json:"featured_articles"`
	TotalViews        int  `json:"total_views"`
	MyArticles        *int `json:"my_articles,omitempty"`
	MyPublished       *int `json:"my_published,omitempty"`
	MyDrafts          *int `json:"my_drafts,omitempty"`
}
