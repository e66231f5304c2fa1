// Package composite builds and prices configurable cart items: a size tier,
// one or two flavors, an optional add-on and any number of extras.
package composite

import (
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Configurator holds the in-progress selection for one item. For sized
// products every dimension other than quantity stays locked until a size is
// chosen. A failed step never changes the state.
type Configurator struct {
	table    *PriceTable
	size     model.SizeTier
	flavors  []model.Product
	addOn    *model.Product
	extras   []model.Product
	quantity int
}

// New starts a configuration from origin, which stays the first flavor.
func New(origin model.Product, table *PriceTable) *Configurator {
	return &Configurator{
		table:    table,
		flavors:  []model.Product{origin},
		quantity: 1,
	}
}

func (c *Configurator) Sized() bool {
	return c.table.IsSized(c.flavors[0])
}

func (c *Configurator) requireSize() error {
	if c.Sized() && c.size == model.SizeNone {
		return ErrMissingSize
	}
	return nil
}

// SetSize picks or changes the size tier.
func (c *Configurator) SetSize(size model.SizeTier) error {
	if !c.table.HasSize(size) {
		return ErrUnknownSize
	}
	c.size = size
	return nil
}

// ToggleFlavor adds p as the second flavor, or removes it if it already is.
// Toggling the origin, or a third flavor while two are selected, is a no-op.
func (c *Configurator) ToggleFlavor(p model.Product) error {
	if err := c.requireSize(); err != nil {
		return err
	}
	if p.ID == c.flavors[0].ID {
		return nil
	}
	if len(c.flavors) == 2 {
		if c.flavors[1].ID == p.ID {
			c.flavors = c.flavors[:1]
		}
		return nil
	}
	c.flavors = append(c.flavors, p)
	return nil
}

func (c *Configurator) SetAddOn(p model.Product) error {
	if err := c.requireSize(); err != nil {
		return err
	}
	addOn := p
	c.addOn = &addOn
	return nil
}

func (c *Configurator) ClearAddOn() error {
	if err := c.requireSize(); err != nil {
		return err
	}
	c.addOn = nil
	return nil
}

// ToggleExtra adds p to the extras, or removes it when already present.
func (c *Configurator) ToggleExtra(p model.Product) error {
	if err := c.requireSize(); err != nil {
		return err
	}
	for i, e := range c.extras {
		if e.ID == p.ID {
			c.extras = append(c.extras[:i:i], c.extras[i+1:]...)
			return nil
		}
	}
	c.extras = append(c.extras, p)
	return nil
}

func (c *Configurator) SetQuantity(q int) error {
	if q < 1 {
		return ErrInvalidQuantity
	}
	c.quantity = q
	return nil
}

func (c *Configurator) PriceClass() model.PriceClass {
	return c.table.ClassOf(c.flavors)
}

// UnitPrice is recomputed from the current state on every call.
func (c *Configurator) UnitPrice() (model.Money, error) {
	return unitPrice(c.table, c.size, c.flavors, c.addOn, c.extras)
}

// Selection returns a copy of the current state without validating it.
func (c *Configurator) Selection() model.CompositeSelection {
	return model.CompositeSelection{
		Size:     c.size,
		Flavors:  c.flavors,
		AddOn:    c.addOn,
		Extras:   c.extras,
		Quantity: c.quantity,
	}.Clone()
}

// Commit freezes the selection. Sized products must have a size by now.
func (c *Configurator) Commit() (model.CompositeSelection, error) {
	if err := c.requireSize(); err != nil {
		return model.CompositeSelection{}, err
	}
	return c.Selection(), nil
}
