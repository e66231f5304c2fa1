package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type ProductFilters struct {
	CategoryID      string       // Empty means all categories
	Query           string       // Name, description or tag substring
	MinPrice        *model.Money // Inclusive
	MaxPrice        *model.Money // Inclusive
	InStock         bool
	OnSale          bool
	IncludeInactive bool
}
