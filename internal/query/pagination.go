package query

import (
	"net/url"
	"strconv"

	"article-api/internal/domain"
)

// Pagination defaults. Callers may override the page size up to
// MaxPageSize; larger requests are clamped, not rejected.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a validated page request.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads page/page_size from the query string. A missing or
// unparseable page defaults to 1; note that an explicit out-of-range
// page is preserved so that Validate can reject it.
func ParsePage(values url.Values, defaultSize, maxSize int) Page {
	p := Page{Number: 1, Size: defaultSize}

	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			p.Number = n
		}
	}

	if raw := values.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Size = n
		}
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}

	return p
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Validate checks the page number against the total count. Page 1 is
// always valid (an empty set has one empty page); anything below 1 or
// beyond the last page is an invalid-page error.
func (p Page) Validate(total int) error {
	if p.Number < 1 {
		return domain.ErrInvalidPage
	}
	if p.Number > 1 && p.Offset() >= total {
		return domain.ErrInvalidPage
	}
	return nil
}

// Links computes the next/previous page numbers for navigation
// metadata; nil means no such page.
func (p Page) Links(total int) (next, prev *int) {
	if p.Number*p.Size < total {
		n := p.Number + 1
		next = &n
	}
	if p.Number > 1 {
		n := p.Number - 1
		prev = &n
	}
	return next, prev
}
