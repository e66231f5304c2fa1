// Package cart holds the priced lines of one storefront session.
package cart

import (
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/composite"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrLineNotFound = errors.New("cart: line not found")

// Cart is owned by a single session and is not safe for concurrent use.
type Cart struct {
	lines []model.CartLine
}

func New() *Cart {
	return &Cart{}
}

// Add prices sel against table and appends it as a new line. The line keeps
// its own copy of sel, so later changes by the caller do not reach it.
func (c *Cart) Add(sel model.CompositeSelection, table *composite.PriceTable) (model.CartLine, error) {
	sel = sel.Clone()
	unit, total, err := composite.PriceComposite(sel, table)
	if err != nil {
		return model.CartLine{}, err
	}
	line := model.CartLine{
		LineID:    uuid.New().String(),
		Selection: sel,
		UnitPrice: unit,
		LineTotal: total,
	}
	c.lines = append(c.lines, line)
	return cloneLine(line), nil
}

func (c *Cart) Remove(lineID string) error {
	i := c.index(lineID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// SetQuantity changes the quantity of a line. A quantity below one removes it.
func (c *Cart) SetQuantity(lineID string, qty int) error {
	if qty < 1 {
		return c.Remove(lineID)
	}
	i := c.index(lineID)
	if i < 0 {
		return ErrLineNotFound
	}
	l := &c.lines[i]
	l.Selection.Quantity = qty
	l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	return nil
}

func (c *Cart) index(lineID string) int {
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			return i
		}
	}
	return -1
}

// TotalItems sums quantities across lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Selection.Quantity
	}
	return n
}

func (c *Cart) Subtotal() model.Money {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal)
	}
	return sum
}

// Lines returns a deep copy of the cart lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = cloneLine(l)
	}
	return out
}

func cloneLine(l model.CartLine) model.CartLine {
	l.Selection = l.Selection.Clone()
	return l
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Clear() {
	c.lines = nil
}
