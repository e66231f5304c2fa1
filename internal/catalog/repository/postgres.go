package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

var _ catalog.Repository = (*PGRepository)(nil)

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type productRow struct {
	ID          string              `db:"id"`
	Name        string              `db:"name"`
	Description sql.NullString      `db:"description"`
	BasePrice   decimal.Decimal     `db:"base_price"`
	OfferPrice  decimal.NullDecimal `db:"offer_price"`
	Stock       int                 `db:"stock"`
	CategoryID  sql.NullString      `db:"category_id"`
	Tags        pq.StringArray      `db:"tags"`
	IsActive    bool                `db:"is_active"`
}

func (r productRow) toModel() model.Product {
	p := model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		BasePrice:   r.BasePrice,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID.String,
		Tags:        []string(r.Tags),
		IsActive:    r.IsActive,
	}
	if r.OfferPrice.Valid {
		offer := r.OfferPrice.Decimal
		p.OfferPrice = &offer
	}
	return p
}

type categoryRow struct {
	ID          string         `db:"id"`
	Label       string         `db:"label"`
	RuleKind    sql.NullString `db:"rule_kind"`
	CategoryIDs pq.StringArray `db:"category_ids"`
	Keywords    pq.StringArray `db:"keywords"`
	Tags        pq.StringArray `db:"tags"`
}

func (r *PGRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `
        SELECT id, name, description, base_price, offer_price, stock,
               category_id, tags, is_active
        FROM products
        ORDER BY sort_order ASC, name ASC
    `
	var rows []productRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	products := make([]model.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toModel()
	}
	return products, nil
}

func (r *PGRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `
        SELECT id, label, rule_kind, category_ids, keywords, tags
        FROM storefront_categories
        ORDER BY sort_order ASC, label ASC
    `
	var rows []categoryRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}

	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		rule, err := model.NewCategoryRule(row.RuleKind.String, row.CategoryIDs, row.Keywords, row.Tags)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", row.ID, err)
		}
		categories = append(categories, model.Category{ID: row.ID, Label: row.Label, Rule: rule})
	}
	return categories, nil
}
