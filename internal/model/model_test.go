package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductEffectivePrice(t *testing.T) {
	offer := MoneyFromString("35.00")
	higher := MoneyFromString("99.00")

	p := Product{BasePrice: MoneyFromString("40.90")}
	assert.False(t, p.OnSale())
	assert.Equal(t, "40.90", FormatMoney(p.EffectivePrice()))

	p.OfferPrice = &offer
	assert.True(t, p.OnSale())
	assert.Equal(t, "35.00", FormatMoney(p.EffectivePrice()))

	p.OfferPrice = &higher
	assert.False(t, p.OnSale())
	assert.Equal(t, "40.90", FormatMoney(p.EffectivePrice()))
}

func TestCategoryJSON(t *testing.T) {
	cases := []Category{
		{ID: "pizzas", Label: "Pizzas", Rule: ByID{IDs: []string{"classic", "special"}}},
		{ID: "veggie", Label: "Vegetarianas", Rule: Heuristic{Keywords: []string{"veg"}, Tags: []string{"vegetariana"}}},
	}
	for _, c := range cases {
		data, err := json.Marshal(c)
		require.NoError(t, err)

		var out Category
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, c, out)
	}
}

func TestNewCategoryRuleInfersKind(t *testing.T) {
	r, err := NewCategoryRule("", []string{"drinks"}, []string{"soda"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ByID{IDs: []string{"drinks"}}, r)

	r, err = NewCategoryRule("", nil, []string{"soda"}, nil)
	require.NoError(t, err)
	assert.Equal(t, Heuristic{Keywords: []string{"soda"}}, r)

	_, err = NewCategoryRule("fuzzy", nil, nil, nil)
	assert.Error(t, err)
}

func TestSelectionDisplayName(t *testing.T) {
	s := CompositeSelection{Flavors: []Product{{Name: "Calabresa"}, {Name: "Portuguesa"}}}
	assert.Equal(t, "Calabresa / Portuguesa", s.DisplayName())
}
