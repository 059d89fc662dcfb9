// Package policy holds the pure permission decisions gating article
// reads and writes. Every function is a predicate over a principal and,
// where relevant, an article; handlers and services never branch on
// roles directly.
package policy

import (
	"article-api/internal/domain"
	"article-api/internal/query"
)

// VisibilityFor computes the implicit list predicate for a principal:
// anonymous readers see only published articles, authenticated readers
// additionally see their own, staff see everything.
func VisibilityFor(p domain.Principal) query.Visibility {
	if p.Staff {
		return query.Visibility{All: true}
	}
	if p.Authenticated {
		return query.Visibility{OwnerID: p.ID}
	}
	return query.Visibility{}
}

// CanView reports whether the principal may retrieve the article.
// Non-published articles are visible only to their author and staff;
// callers translate a false result into not-found, never forbidden, so
// existence is not leaked.
func CanView(p domain.Principal, a *domain.Article) bool {
	if a.IsPublished() {
		return true
	}
	return p.Staff || p.IsAuthor(a)
}

// CanModify reports whether the principal may update or delete the
// article: its author, or staff.
func CanModify(p domain.Principal, a *domain.Article) bool {
	if !p.Authenticated {
		return false
	}
	return p.Staff || p.IsAuthor(a)
}

// CanToggleFeatured reports whether the principal may flip the featured
// flag: staff only.
func CanToggleFeatured(p domain.Principal) bool {
	return p.Authenticated && p.Staff
}

// CountsView reports whether retrieving the article should increment
// its view counter. Authors reading their own work do not count, and
// non-published articles accumulate no views.
func CountsView(p domain.Principal, a *domain.Article) bool {
	return a.IsPublished() && !p.IsAuthor(a)
}
