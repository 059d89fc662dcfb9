// Package query translates request query strings into typed filter,
// ordering, and pagination values applied against the article store.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultOrdering is applied when no (or an unrecognized) ordering is
// requested: newest first.
const DefaultOrdering = "-created_at"

// orderableFields is the whitelist of fields exposed for ordering.
var orderableFields = map[string]bool{
	"title":        true,
	"created_at":   true,
	"updated_at":   true,
	"view_count":   true,
	"published_at": true,
}

// Filter is the validated set of article list constraints parsed from a
// query string. Zero/nil fields mean "no constraint"; all constraints
// compose with AND semantics except Search, which matches any of title,
// content, tags, or author username.
type Filter struct {
	Search  string
	Title   string
	Content string
	Author  string

	// Status is passed through as an exact match even when it names no
	// known status; an unknown value simply matches nothing.
	Status string

	Featured *bool

	// Tags matches articles containing ANY of the listed tags.
	Tags []string

	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	PublishedAfter  *time.Time
	PublishedBefore *time.Time

	MinViews *int
	MaxViews *int

	OrderField string
	OrderDesc  bool
}

// Visibility is the implicit, non-overridable predicate layered under
// every user-supplied filter. It is computed from the principal by the
// policy layer, never parsed from the request.
type Visibility struct {
	// All disables the visibility predicate (staff, or owner-scoped
	// listings that intentionally include drafts).
	All bool

	// OwnerID additionally admits this author's non-published articles.
	OwnerID string
}

// ParseFilter builds a Filter from raw query parameters. Unknown keys
// and unparseable values are ignored rather than rejected.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Search:  strings.TrimSpace(values.Get("search")),
		Title:   strings.TrimSpace(values.Get("title")),
		Content: strings.TrimSpace(values.Get("content")),
		Author:  strings.TrimSpace(values.Get("author")),
		Status:  strings.TrimSpace(values.Get("status")),
	}

	if raw := values.Get("featured"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			f.Featured = &b
		}
	}

	if raw := values.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}

	f.CreatedAfter = parseTime(values.Get("created_after"))
	f.CreatedBefore = parseTime(values.Get("created_before"))
	f.PublishedAfter = parseTime(values.Get("published_after"))
	f.PublishedBefore = parseTime(values.Get("published_before"))

	f.MinViews = parseInt(values.Get("min_views"))
	f.MaxViews = parseInt(values.Get("max_views"))

	f.OrderField, f.OrderDesc = parseOrdering(values.Get("ordering"))

	return f
}

// parseOrdering resolves the ordering parameter against the whitelist,
// falling back to DefaultOrdering for unrecognized fields.
func parseOrdering(raw string) (field string, desc bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultOrdering
	}

	desc = strings.HasPrefix(raw, "-")
	field = strings.TrimPrefix(raw, "-")

	if !orderableFields[field] {
		return "created_at", true
	}
	return field, desc
}

// parseTime accepts RFC 3339 timestamps and bare ISO dates.
func parseTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func parseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
