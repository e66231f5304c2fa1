package matcher

import (
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// MatchesQuery is a case-insensitive substring test over name, description
// and tags. Only the empty query matches every product; whitespace is part of
// the query.
func MatchesQuery(p model.Product, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
