// Package checkout turns a session's cart into totals and an order payload.
package checkout

import (
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

var hundred = decimal.NewFromInt(100)

// ComputeTotals adds shipping and tax to subtotal and takes off discount. The
// grand total never goes below zero.
func ComputeTotals(subtotal, shipping, tax, discount model.Money) model.Totals {
	grand := subtotal.Add(shipping).Add(tax).Sub(discount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}
	return model.Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		Discount:   discount,
		GrandTotal: grand,
	}
}

// AssembleOrderPayload builds the payload for the order gateway. It refuses an
// empty cart and never returns a partial payload.
func AssembleOrderPayload(lines []model.CartLine, customerRef string, totals model.Totals) (model.OrderPayload, error) {
	if len(lines) == 0 {
		return model.OrderPayload{}, ErrEmptyCart
	}
	items := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, orderItem(l))
	}
	return model.OrderPayload{
		CustomerRef: customerRef,
		Items:       items,
		Totals:      totals,
	}, nil
}

func orderItem(l model.CartLine) model.OrderItem {
	sel := l.Selection
	opts := model.ItemOptions{Size: sel.Size}
	for _, f := range sel.Flavors {
		opts.Flavors = append(opts.Flavors, f.ID)
	}
	if sel.AddOn != nil {
		opts.AddOn = sel.AddOn.ID
	}
	for _, e := range sel.Extras {
		opts.Extras = append(opts.Extras, e.ID)
	}
	return model.OrderItem{
		Name:      sel.DisplayName(),
		ProductID: sel.Origin().ID,
		UnitPrice: l.UnitPrice,
		Quantity:  sel.Quantity,
		Options:   opts,
	}
}

// Pricing holds the shipping and tax rules applied on top of the cart.
type Pricing struct {
	ShippingFee       model.Money
	FreeShippingAbove model.Money // zero disables free shipping
	TaxPercent        model.Money
}

// Shipping is the flat fee, waived once subtotal reaches the free shipping
// threshold. An empty cart ships for free.
func (p Pricing) Shipping(subtotal model.Money) model.Money {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	if p.FreeShippingAbove.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeShippingAbove) {
		return decimal.Zero
	}
	return model.RoundMoney(p.ShippingFee)
}

// Tax applies TaxPercent to the discounted subtotal, rounded to cents.
func (p Pricing) Tax(subtotal, discount model.Money) model.Money {
	base := subtotal.Sub(discount)
	if !base.IsPositive() || !p.TaxPercent.IsPositive() {
		return decimal.Zero
	}
	return model.RoundMoney(base.Mul(p.TaxPercent).Div(hundred))
}

// Totals quotes a cart with the given subtotal and coupon discount.
func (p Pricing) Totals(subtotal, discount model.Money) model.Totals {
	return ComputeTotals(subtotal, p.Shipping(subtotal), p.Tax(subtotal, discount), discount)
}
