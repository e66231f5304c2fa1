package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPGRepository_ListProducts(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "base_price", "offer_price", "stock", "category_id", "tags", "is_active"}).
		AddRow("calabresa", "Calabresa", "Calabresa e cebola", "40.90", nil, 10, "classic", "{carne,picante}", true).
		AddRow("coca", "Coca-Cola 2L", nil, "12.00", "9.90", 0, nil, "{}", false)
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnRows(rows)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, "calabresa", p.ID)
	assert.Equal(t, "40.90", model.FormatMoney(p.BasePrice))
	assert.Nil(t, p.OfferPrice)
	assert.Equal(t, []string{"carne", "picante"}, p.Tags)
	assert.Equal(t, "classic", p.CategoryID)
	assert.True(t, p.IsActive)

	c := products[1]
	assert.Equal(t, "", c.Description)
	assert.Equal(t, "", c.CategoryID)
	require.NotNil(t, c.OfferPrice)
	assert.Equal(t, "9.90", model.FormatMoney(*c.OfferPrice))
	assert.True(t, c.OnSale())
	assert.Empty(t, c.Tags)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ListCategories(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "label", "rule_kind", "category_ids", "keywords", "tags"}).
		AddRow("pizzas", "Pizzas", "by_id", "{classic,special}", nil, nil).
		AddRow("veggie", "Vegetarianas", nil, nil, "{veg}", "{vegetariana}")
	mock.ExpectQuery("SELECT (.+) FROM storefront_categories").WillReturnRows(rows)

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	byID, ok := categories[0].Rule.(model.ByID)
	require.True(t, ok)
	assert.Equal(t, []string{"classic", "special"}, byID.IDs)

	heur, ok := categories[1].Rule.(model.Heuristic)
	require.True(t, ok)
	assert.Equal(t, []string{"veg"}, heur.Keywords)
	assert.Equal(t, []string{"vegetariana"}, heur.Tags)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ListCategoriesBadRule(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "label", "rule_kind", "category_ids", "keywords", "tags"}).
		AddRow("weird", "Weird", "fuzzy", nil, nil, nil)
	mock.ExpectQuery("SELECT (.+) FROM storefront_categories").WillReturnRows(rows)

	_, err := repo.ListCategories(context.Background())
	assert.ErrorContains(t, err, "weird")
}

func TestPGRepository_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnError(errors.New("connection refused"))

	_, err := repo.ListProducts(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}
