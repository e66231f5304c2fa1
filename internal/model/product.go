package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   Money            `json:"base_price"`
	OfferPrice  *decimal.Decimal `json:"offer_price,omitempty"` // Nullable
	Stock       int              `json:"stock"`
	CategoryID  string           `json:"category_id"`
	Tags        []string         `json:"tags"`
	IsActive    bool             `json:"is_active"`
}

// Clone returns a copy of p that shares no memory with it.
func (p Product) Clone() Product {
	if p.OfferPrice != nil {
		offer := *p.OfferPrice
		p.OfferPrice = &offer
	}
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

// OnSale reports whether a lower offer price is in effect.
func (p Product) OnSale() bool {
	return p.OfferPrice != nil && p.OfferPrice.LessThan(p.BasePrice)
}

// EffectivePrice is the price a customer pays for one unit of p on its own.
func (p Product) EffectivePrice() Money {
	if p.OnSale() {
		return *p.OfferPrice
	}
	return p.BasePrice
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
