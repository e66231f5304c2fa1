// Package coupon resolves discount codes and tracks the coupon applied to a
// session.
package coupon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("coupon: code not found")

var hundred = decimal.NewFromInt(100)

// Registry is the read-only set of redeemable coupons. Codes are matched
// case-insensitively.
type Registry struct {
	byCode map[string]model.Coupon
}

func NewRegistry(coupons []model.Coupon) (*Registry, error) {
	r := &Registry{byCode: make(map[string]model.Coupon, len(coupons))}
	for _, c := range coupons {
		key := normalize(c.Code)
		if key == "" {
			return nil, fmt.Errorf("coupon registry: empty code")
		}
		if _, dup := r.byCode[key]; dup {
			return nil, fmt.Errorf("coupon registry: duplicate code %q", c.Code)
		}
		switch c.Kind {
		case model.CouponPercentage, model.CouponFixed:
		default:
			return nil, fmt.Errorf("coupon registry: code %q has unknown kind %q", c.Code, c.Kind)
		}
		if c.Value.IsNegative() {
			return nil, fmt.Errorf("coupon registry: code %q has negative value", c.Code)
		}
		r.byCode[key] = c
	}
	return r, nil
}

func (r *Registry) Lookup(code string) (model.Coupon, error) {
	c, ok := r.byCode[normalize(code)]
	if !ok {
		return model.Coupon{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return c, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount computes what c takes off subtotal. The result is never negative
// and never exceeds subtotal.
func Discount(c model.Coupon, subtotal model.Money) model.Money {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	var d model.Money
	switch c.Kind {
	case model.CouponPercentage:
		d = model.RoundMoney(subtotal.Mul(c.Value).Div(hundred))
	case model.CouponFixed:
		d = model.RoundMoney(c.Value)
	default:
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(d, subtotal)
}
