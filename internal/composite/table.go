package composite

import (
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// PriceTable prices sized products by (size tier, price class). It also knows
// which product categories are sized and which escalate to the special class.
type PriceTable struct {
	tiers   map[model.SizeTier]map[model.PriceClass]model.Money
	sizes   []model.SizeTier
	special map[string]struct{}
	sized   map[string]struct{}
}

type TierPrices struct {
	Size    model.SizeTier
	Classic model.Money
	Special model.Money
}

// NewPriceTable validates and indexes the table. Tiers keep the given order,
// which is the order sizes are offered in.
func NewPriceTable(tiers []TierPrices, specialCategories, sizedCategories []string) (*PriceTable, error) {
	t := &PriceTable{
		tiers:   make(map[model.SizeTier]map[model.PriceClass]model.Money, len(tiers)),
		special: toSet(specialCategories),
		sized:   toSet(sizedCategories),
	}
	for _, tp := range tiers {
		if tp.Size == model.SizeNone {
			return nil, fmt.Errorf("price table: empty size tier")
		}
		if _, dup := t.tiers[tp.Size]; dup {
			return nil, fmt.Errorf("price table: duplicate size %s", tp.Size)
		}
		if tp.Classic.IsNegative() || tp.Special.IsNegative() {
			return nil, fmt.Errorf("price table: negative price for size %s", tp.Size)
		}
		if !model.IsCents(tp.Classic) || !model.IsCents(tp.Special) {
			return nil, fmt.Errorf("price table: sub-cent price for size %s", tp.Size)
		}
		t.tiers[tp.Size] = map[model.PriceClass]model.Money{
			model.PriceClassClassic: tp.Classic,
			model.PriceClassSpecial: tp.Special,
		}
		t.sizes = append(t.sizes, tp.Size)
	}
	return t, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (t *PriceTable) Sizes() []model.SizeTier {
	out := make([]model.SizeTier, len(t.sizes))
	copy(out, t.sizes)
	return out
}

func (t *PriceTable) HasSize(size model.SizeTier) bool {
	_, ok := t.tiers[size]
	return ok
}

// IsSized reports whether p is sold in size tiers.
func (t *PriceTable) IsSized(p model.Product) bool {
	_, ok := t.sized[p.CategoryID]
	return ok
}

// IsSpecial reports whether p belongs to a special-priced category.
func (t *PriceTable) IsSpecial(p model.Product) bool {
	_, ok := t.special[p.CategoryID]
	return ok
}

// TierPrice looks up the price of one unit of size in class.
func (t *PriceTable) TierPrice(size model.SizeTier, class model.PriceClass) (model.Money, error) {
	byClass, ok := t.tiers[size]
	if !ok {
		return model.Money{}, ErrUnknownSize
	}
	return byClass[class], nil
}

// ClassOf applies price-class escalation: one special flavor makes the whole
// selection special.
func (t *PriceTable) ClassOf(flavors []model.Product) model.PriceClass {
	for _, f := range flavors {
		if t.IsSpecial(f) {
			return model.PriceClassSpecial
		}
	}
	return model.PriceClassClassic
}
