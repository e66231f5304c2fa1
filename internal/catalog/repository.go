package catalog

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Repository is the catalog provider: it returns the current product and
// category records as stored by the commerce backend.
type Repository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}
