package matcher

import (
	"sort"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

const (
	scoreSameCategory = 10
	scoreSharedTag    = 5
	scoreClosePrice   = 3
)

var priceBand = decimal.NewFromFloat(0.2)

// RankSimilar orders candidates by similarity to target and keeps at most
// limit of them. The target itself, inactive products and products without
// stock are never suggested. Equal scores keep catalog order.
func RankSimilar(target model.Product, candidates []model.Product, limit int) []model.Product {
	if limit <= 0 {
		return []model.Product{}
	}

	type scored struct {
		product model.Product
		score   int
	}

	targetTags := make(map[string]struct{}, len(target.Tags))
	for _, t := range target.Tags {
		targetTags[strings.ToLower(t)] = struct{}{}
	}
	targetPrice := target.EffectivePrice()
	band := targetPrice.Mul(priceBand)

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == target.ID || !c.IsActive || c.Stock <= 0 {
			continue
		}

		score := 0
		if c.CategoryID == target.CategoryID {
			score += scoreSameCategory
		}
		seen := make(map[string]struct{}, len(c.Tags))
		for _, t := range c.Tags {
			key := strings.ToLower(t)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := targetTags[key]; ok {
				score += scoreSharedTag
			}
		}
		if c.EffectivePrice().Sub(targetPrice).Abs().LessThan(band) {
			score += scoreClosePrice
		}

		ranked = append(ranked, scored{product: c, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]model.Product, len(ranked))
	for i, r := range ranked {
		out[i] = r.product
	}
	return out
}
