// Package matcher holds the pure catalog rules: category membership, free-text
// search, similarity ranking and the combined product filter. Nothing here
// performs I/O or keeps state between calls.
package matcher

import (
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// MatchesCategory reports whether p belongs to c.
//
// ByID categories are decided by category identifier alone. Heuristic
// categories try, in order, a keyword in the name, a shared tag, and a keyword
// in the description.
func MatchesCategory(p model.Product, c model.Category) bool {
	switch rule := c.Rule.(type) {
	case model.ByID:
		for _, id := range rule.IDs {
			if p.CategoryID == id {
				return true
			}
		}
		return false
	case model.Heuristic:
		return matchesHeuristic(p, rule)
	default:
		return false
	}
}

func matchesHeuristic(p model.Product, rule model.Heuristic) bool {
	name := strings.ToLower(p.Name)
	if containsAnyKeyword(name, rule.Keywords) {
		return true
	}
	if sharesTag(p.Tags, rule.Tags) {
		return true
	}
	return containsAnyKeyword(strings.ToLower(p.Description), rule.Keywords)
}

func containsAnyKeyword(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

func sharesTag(productTags, categoryTags []string) bool {
	if len(productTags) == 0 || len(categoryTags) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(categoryTags))
	for _, t := range categoryTags {
		set[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range productTags {
		if _, ok := set[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}
