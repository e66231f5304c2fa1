package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/matcher"
	"github.com/fekuna/omnipos-storefront-service/internal/metrics"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	apperrors "github.com/fekuna/omnipos-storefront-service/pkg/errors"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

const snapshotCacheKey = "storefront:catalog:snapshot"

type catalogUseCase struct {
	repo   catalog.Repository
	cache  cache.Store
	ttl    time.Duration
	logger logger.ZapLogger
}

// NewCatalogUseCase builds the catalog use case. store may be nil, in which
// case every Snapshot call reads the provider.
func NewCatalogUseCase(repo catalog.Repository, store cache.Store, ttl time.Duration, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  store,
		ttl:    ttl,
		logger: log,
	}
}

func (uc *catalogUseCase) Snapshot(ctx context.Context) (*model.CatalogSnapshot, error) {
	// 1. Check Cache
	if uc.cache != nil {
		data, err := uc.cache.Get(ctx, snapshotCacheKey)
		if err == nil {
			var snap model.CatalogSnapshot
			decodeErr := json.Unmarshal(data, &snap)
			if decodeErr == nil {
				metrics.RecordCatalogCache(true)
				return &snap, nil
			}
			uc.logger.Warn("discarding undecodable catalog snapshot", zap.Error(decodeErr))
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		metrics.RecordCatalogCache(false)
	}

	// 2. Read Provider
	start := time.Now()
	products, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, apperrors.External("catalog provider", err)
	}
	categories, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.External("catalog provider", err)
	}
	metrics.ObserveCatalogFetch(time.Since(start))

	snap := &model.CatalogSnapshot{
		Products:   products,
		Categories: categories,
		FetchedAt:  time.Now().UTC(),
	}
	uc.logger.Debug("catalog snapshot fetched",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
	)

	// 3. Set Cache
	if uc.cache != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := uc.cache.Set(ctx, snapshotCacheKey, data, uc.ttl); err != nil {
				uc.logger.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}

	return snap, nil
}

func (uc *catalogUseCase) FilterProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	criteria := matcher.Criteria{
		Query:      filters.Query,
		MinPrice:   filters.MinPrice,
		MaxPrice:   filters.MaxPrice,
		InStock:    filters.InStock,
		OnSale:     filters.OnSale,
		ActiveOnly: !filters.IncludeInactive,
	}
	if filters.CategoryID != "" {
		c, ok := snap.Category(filters.CategoryID)
		if !ok {
			return nil, &apperrors.ErrNotFound{Resource: "category", ID: filters.CategoryID}
		}
		criteria.Category = &c
	}

	return matcher.Filter(snap.Products, criteria), nil
}

func (uc *catalogUseCase) RankSimilar(ctx context.Context, productID string, limit int) ([]model.Product, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	target, ok := snap.Product(productID)
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: productID}
	}
	return matcher.RankSimilar(target, snap.Products, limit), nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := snap.Product(id)
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: id}
	}
	return &p, nil
}

func (uc *catalogUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

func (uc *catalogUseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Delete(ctx, snapshotCacheKey)
}
