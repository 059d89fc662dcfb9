package derive

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Intro To APIs", "intro-to-apis"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"Go 1.24 Released", "go-1-24-released"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}

func TestSlugWithSuffix(t *testing.T) {
	assert.Equal(t, "intro-to-apis-2", SlugWithSuffix("intro-to-apis", 2))
	assert.Equal(t, "intro-to-apis-10", SlugWithSuffix("intro-to-apis", 10))
}

func TestExcerpt(t *testing.T) {
	t.Run("short content returned as-is", func(t *testing.T) {
		assert.Equal(t, "short body", Excerpt("short body"))
	})

	t.Run("long content truncated on word boundary", func(t *testing.T) {
		content := strings.Repeat("word ", 100)
		got := Excerpt(content)

		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, len(got), ExcerptLimit+3)
		// No mid-word cut: stripping the ellipsis leaves whole words.
		body := strings.TrimSuffix(got, "...")
		for _, w := range strings.Fields(body) {
			assert.Equal(t, "word", w)
		}
	})

	t.Run("multibyte content without spaces stays valid UTF-8", func(t *testing.T) {
		content := strings.Repeat("日本語の文章", 40)
		got := Excerpt(content)

		assert.True(t, utf8.ValidString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.Equal(t, ExcerptLimit+3, utf8.RuneCountInString(got))
	})

	t.Run("exactly at the limit is not truncated", func(t *testing.T) {
		content := strings.Repeat("a", ExcerptLimit)
		assert.Equal(t, content, Excerpt(content))
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		assert.Equal(t, "body", Excerpt("  body  "))
	})
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"simple", "go,api,rest", "go,api,rest"},
		{"trims whitespace", " go , api ,rest ", "go,api,rest"},
		{"drops empties", "go,,api,", "go,api"},
		{"dedup preserves first-seen order", "go,api,go,rest,api", "go,api,rest"},
		{"dedup is case-sensitive", "Go,go", "Go,go"},
		{"empty input", "", ""},
		{"only separators", " , ,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.raw))
		})
	}
}

func TestTagList(t *testing.T) {
	assert.Equal(t, []string{"go", "api"}, TagList("go, api"))
	assert.Nil(t, TagList(""))
	assert.Nil(t, TagList("  "))
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty content", 0, 1},
		{"few words", 10, 1},
		{"exactly one minute", 200, 1},
		{"just over one minute", 201, 2},
		{"250 words", 250, 2},
		{"two minutes", 400, 2},
		{"rounds up", 401, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.TrimSpace(strings.Repeat("word ", tt.words))
			assert.Equal(t, tt.want, ReadingTime(content))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("one two three"))
	assert.Equal(t, 2, WordCount("  padded   words  "))
}
