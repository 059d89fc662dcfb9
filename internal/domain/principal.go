package domain

// Principal is the identity a request acts as. The zero value is an
// anonymous, unauthenticated caller.
type Principal struct {
	ID            string
	Username      string
	Staff         bool
	Authenticated bool
}

// Anonymous is the principal of an unauthenticated request.
var Anonymous = Principal{}

// IsAuthor reports whether the principal authored the article. Anonymous
// principals author nothing, even when the article has no author set.
func (p Principal) IsAuthor(a *Article) bool {
	return p.Authenticated && p.ID == a.AuthorID
}
