package catalog

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	Snapshot(ctx context.Context) (*model.CatalogSnapshot, error)
	FilterProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	RankSimilar(ctx context.Context, productID string, limit int) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)

	// Invalidate drops the cached snapshot so the next read goes to the provider.
	Invalidate(ctx context.Context) error
}
