package matcher

import (
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Criteria narrows a product list. Zero values disable a criterion.
type Criteria struct {
	Category   *model.Category
	Query      string
	MinPrice   *model.Money
	MaxPrice   *model.Money
	InStock    bool
	OnSale     bool
	ActiveOnly bool
}

// Filter returns the products satisfying every criterion, in input order.
// Prices compare against the effective (offer-aware) price, bounds inclusive.
func Filter(products []model.Product, c Criteria) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if c.ActiveOnly && !p.IsActive {
			continue
		}
		if c.InStock && !p.InStock() {
			continue
		}
		if c.OnSale && !p.OnSale() {
			continue
		}
		if c.MinPrice != nil && p.EffectivePrice().LessThan(*c.MinPrice) {
			continue
		}
		if c.MaxPrice != nil && p.EffectivePrice().GreaterThan(*c.MaxPrice) {
			continue
		}
		if c.Category != nil && !MatchesCategory(p, *c.Category) {
			continue
		}
		if !MatchesQuery(p, c.Query) {
			continue
		}
		out = append(out, p)
	}
	return out
}
