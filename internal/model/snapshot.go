package model

import "time"

// CatalogSnapshot is one read of the catalog. Products keep provider order,
// which is also the tie-break order for similarity ranking.
type CatalogSnapshot struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	FetchedAt  time.Time  `json:"fetched_at"`
}

func (s *CatalogSnapshot) Product(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s *CatalogSnapshot) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
