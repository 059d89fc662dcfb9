// Package derive computes the server-derived article fields: slug,
// excerpt, tag normalization, and reading time.
package derive

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

const (
	// ExcerptLimit is the character budget for a derived excerpt.
	ExcerptLimit = 200

	// WordsPerMinute is the assumed reading speed.
	WordsPerMinute = 200
)

// Slug derives a URL-safe slug from a title.
func Slug(title string) string {
	return slug.Make(title)
}

// SlugWithSuffix appends a numeric disambiguator for collision retries.
func SlugWithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}

// Excerpt truncates content to the excerpt budget on a word boundary,
// appending an ellipsis when anything was cut. The budget counts
// characters, not bytes, so multibyte content is never split mid-rune.
func Excerpt(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= ExcerptLimit {
		return content
	}

	cut := string([]rune(content)[:ExcerptLimit])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

// NormalizeTags splits a comma-separated tag string, trims whitespace,
// drops empties, and de-duplicates case-sensitively while preserving
// first-seen order. Returns the normalized comma-separated string.
func NormalizeTags(raw string) string {
	return strings.Join(TagList(raw), ",")
}

// TagList returns the parsed tag list for a raw comma-separated string.
func TagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// ReadingTime estimates reading minutes from the content word count,
// rounding up, with a minimum of one minute.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// WordCount returns the number of whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
