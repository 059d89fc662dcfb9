package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-api/internal/domain"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		values     url.Values
		wantNumber int
		wantSize   int
	}{
		{"defaults", url.Values{}, 1, 20},
		{"explicit page", url.Values{"page": {"3"}}, 3, 20},
		{"explicit size", url.Values{"page_size": {"10"}}, 1, 10},
		{"size clamped to max", url.Values{"page_size": {"5000"}}, 1, 100},
		{"zero size ignored", url.Values{"page_size": {"0"}}, 1, 20},
		{"garbage page ignored", url.Values{"page": {"abc"}}, 1, 20},
		{"negative page preserved for validation", url.Values{"page": {"-2"}}, -2, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePage(tt.values, DefaultPageSize, MaxPageSize)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantSize, p.Size)
		})
	}
}

func TestPage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		page    Page
		total   int
		wantErr bool
	}{
		{"first page of empty set", Page{1, 20}, 0, false},
		{"first page", Page{1, 20}, 50, false},
		{"last page", Page{3, 20}, 50, false},
		{"beyond last page", Page{4, 20}, 50, true},
		{"page zero", Page{0, 20}, 50, true},
		{"negative page", Page{-1, 20}, 50, true},
		{"second page of empty set", Page{2, 20}, 0, true},
		{"exact boundary", Page{2, 20}, 40, false},
		{"just past boundary", Page{3, 20}, 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate(tt.total)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPage)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPage_Links(t *testing.T) {
	next, prev := Page{1, 20}.Links(50)
	require.NotNil(t, next)
	assert.Equal(t, 2, *next)
	assert.Nil(t, prev)

	next, prev = Page{2, 20}.Links(50)
	require.NotNil(t, next)
	assert.Equal(t, 3, *next)
	require.NotNil(t, prev)
	assert.Equal(t, 1, *prev)

	next, prev = Page{3, 20}.Links(50)
	assert.Nil(t, next)
	require.NotNil(t, prev)
	assert.Equal(t, 2, *prev)

	next, prev = Page{1, 20}.Links(0)
	assert.Nil(t, next)
	assert.Nil(t, prev)
}

// Walking every page must visit each record exactly once and the page
// lengths must sum to the total.
func TestPagination_CoversAllRecords(t *testing.T) {
	const total = 47
	const size = 10

	seen := 0
	page := Page{Number: 1, Size: size}
	for {
		require.NoError(t, page.Validate(total))

		remaining := total - page.Offset()
		length := size
		if remaining < size {
			length = remaining
		}
		seen += length

		next, _ := page.Links(total)
		if next == nil {
			break
		}
		page.Number = *next
	}

	assert.Equal(t, total, seen)
}
