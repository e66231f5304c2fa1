package coupon

import (
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/metrics"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

// Engine holds at most one active coupon for a session. It is not safe for
// concurrent use.
type Engine struct {
	registry *Registry
	active   *model.Coupon
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Apply activates code and returns the discount it yields on subtotal. An
// unknown code leaves the current coupon in place.
func (e *Engine) Apply(code string, subtotal model.Money) (model.Money, error) {
	c, err := e.registry.Lookup(code)
	if err != nil {
		metrics.RecordCoupon("not_found")
		return decimal.Zero, err
	}
	if e.active != nil {
		return e.Replace(c.Code, subtotal)
	}
	e.active = &c
	metrics.RecordCoupon("applied")
	return Discount(c, subtotal), nil
}

// Replace drops the current coupon, then applies code. If code is unknown the
// session ends up with no coupon.
func (e *Engine) Replace(code string, subtotal model.Money) (model.Money, error) {
	e.active = nil
	c, err := e.registry.Lookup(code)
	if err != nil {
		metrics.RecordCoupon("not_found")
		return decimal.Zero, err
	}
	e.active = &c
	metrics.RecordCoupon("replaced")
	return Discount(c, subtotal), nil
}

func (e *Engine) Remove() {
	e.active = nil
}

func (e *Engine) Active() (model.Coupon, bool) {
	if e.active == nil {
		return model.Coupon{}, false
	}
	return *e.active, true
}

// Discount recomputes the active coupon against the current subtotal.
func (e *Engine) Discount(subtotal model.Money) model.Money {
	if e.active == nil {
		return decimal.Zero
	}
	return Discount(*e.active, subtotal)
}

// IsNotFound reports whether err came from an unknown coupon code.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
