package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"
	"github.com/shopspring/decimal"
)

const (
	ProductIndex  = "storefront-products"
	CategoryIndex = "storefront-categories"

	defaultMaxDocs = 1000
)

// ESRepository reads the catalog from the search cluster the commerce backend
// publishes into. Results keep the backend's sort_order.
type ESRepository struct {
	es      *search.Client
	maxDocs int
}

var _ catalog.Repository = (*ESRepository)(nil)

func NewESRepository(es *search.Client, maxDocs int) *ESRepository {
	if maxDocs <= 0 {
		maxDocs = defaultMaxDocs
	}
	return &ESRepository{es: es, maxDocs: maxDocs}
}

type esProduct struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   decimal.Decimal  `json:"base_price"`
	OfferPrice  *decimal.Decimal `json:"offer_price"`
	Stock       int              `json:"stock"`
	CategoryID  string           `json:"category_id"`
	Tags        []string         `json:"tags"`
	IsActive    bool             `json:"is_active"`
}

func (r *ESRepository) matchAll() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
		"size": r.maxDocs,
		"sort": []map[string]interface{}{
			{"sort_order": map[string]interface{}{"order": "asc", "unmapped_type": "integer"}},
			{"_doc": "asc"},
		},
	}
}

func (r *ESRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	res, err := r.es.Search(ctx, ProductIndex, r.matchAll())
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc esProduct
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", hit.ID, err)
		}
		if doc.ID == "" {
			doc.ID = hit.ID
		}
		products = append(products, model.Product{
			ID:          doc.ID,
			Name:        doc.Name,
			Description: doc.Description,
			BasePrice:   doc.BasePrice,
			OfferPrice:  doc.OfferPrice,
			Stock:       doc.Stock,
			CategoryID:  doc.CategoryID,
			Tags:        doc.Tags,
			IsActive:    doc.IsActive,
		})
	}
	return products, nil
}

func (r *ESRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	res, err := r.es.Search(ctx, CategoryIndex, r.matchAll())
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var c model.Category
		if err := json.Unmarshal(hit.Source, &c); err != nil {
			return nil, fmt.Errorf("decode category %s: %w", hit.ID, err)
		}
		if c.ID == "" {
			c.ID = hit.ID
		}
		categories = append(categories, c)
	}
	return categories, nil
}
