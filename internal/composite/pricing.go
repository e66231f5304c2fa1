package composite

import (
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

// PriceComposite prices a committed selection. The line total is always the
// unit price times the quantity.
func PriceComposite(sel model.CompositeSelection, table *PriceTable) (unit, line model.Money, err error) {
	if len(sel.Flavors) < 1 || len(sel.Flavors) > 2 {
		return model.Money{}, model.Money{}, ErrInvalidFlavorCount
	}
	if len(sel.Flavors) == 2 && sel.Flavors[0].ID == sel.Flavors[1].ID {
		return model.Money{}, model.Money{}, ErrInvalidFlavorCount
	}
	if sel.Quantity < 1 {
		return model.Money{}, model.Money{}, ErrInvalidQuantity
	}
	unit, err = unitPrice(table, sel.Size, sel.Flavors, sel.AddOn, sel.Extras)
	if err != nil {
		return model.Money{}, model.Money{}, err
	}
	return unit, unit.Mul(decimal.NewFromInt(int64(sel.Quantity))), nil
}

func unitPrice(table *PriceTable, size model.SizeTier, flavors []model.Product, addOn *model.Product, extras []model.Product) (model.Money, error) {
	origin := flavors[0]

	var base model.Money
	if table.IsSized(origin) {
		if size == model.SizeNone {
			return model.Money{}, ErrMissingSize
		}
		p, err := table.TierPrice(size, table.ClassOf(flavors))
		if err != nil {
			return model.Money{}, err
		}
		base = p
	} else {
		base = origin.EffectivePrice()
	}

	total := base
	if addOn != nil {
		total = total.Add(addOn.EffectivePrice())
	}
	for _, e := range extras {
		total = total.Add(e.EffectivePrice())
	}
	if total.IsNegative() {
		total = decimal.Zero
	}
	return model.RoundMoney(total), nil
}
