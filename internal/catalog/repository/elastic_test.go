package repository

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	responses map[string]string // path prefix -> body
	status    int
	paths     []string
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.paths = append(f.paths, req.URL.Path)
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	body := `{}`
	for prefix, b := range f.responses {
		if strings.HasPrefix(req.URL.Path, prefix) {
			body = b
		}
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func newESRepo(t *testing.T, ft *fakeTransport) *ESRepository {
	t.Helper()
	client, err := search.New(&search.Config{
		Addresses: []string{"http://es.local:9200"},
		Transport: ft,
	})
	require.NoError(t, err)
	return NewESRepository(client, 0)
}

func TestESRepository_ListProducts(t *testing.T) {
	ft := &fakeTransport{responses: map[string]string{
		"/" + ProductIndex: `{"hits":{"total":{"value":2},"hits":[
			{"_id":"calabresa","_source":{"id":"calabresa","name":"Calabresa","base_price":40.9,"stock":3,"category_id":"classic","tags":["carne"],"is_active":true}},
			{"_id":"suco","_source":{"name":"Suco de Laranja","base_price":"9.00","offer_price":"7.50","stock":8,"category_id":"drinks","is_active":true}}
		]}}`,
	}}
	repo := newESRepo(t, ft)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "calabresa", products[0].ID)
	assert.Equal(t, "40.90", model.FormatMoney(products[0].BasePrice))
	assert.Equal(t, []string{"carne"}, products[0].Tags)

	assert.Equal(t, "suco", products[1].ID, "falls back to the document id")
	require.NotNil(t, products[1].OfferPrice)
	assert.Equal(t, "7.50", model.FormatMoney(products[1].EffectivePrice()))

	assert.Contains(t, ft.paths, "/"+ProductIndex+"/_search")
}

func TestESRepository_ListCategories(t *testing.T) {
	ft := &fakeTransport{responses: map[string]string{
		"/" + CategoryIndex: `{"hits":{"total":{"value":2},"hits":[
			{"_id":"pizzas","_source":{"id":"pizzas","label":"Pizzas","rule":"by_id","ids":["classic","special"]}},
			{"_id":"veggie","_source":{"label":"Vegetarianas","keywords":["veg"]}}
		]}}`,
	}}
	repo := newESRepo(t, ft)

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, model.ByID{IDs: []string{"classic", "special"}}, categories[0].Rule)
	assert.Equal(t, "veggie", categories[1].ID)
	assert.Equal(t, model.Heuristic{Keywords: []string{"veg"}}, categories[1].Rule)
}

func TestESRepository_ErrorStatus(t *testing.T) {
	ft := &fakeTransport{status: http.StatusInternalServerError}
	repo := newESRepo(t, ft)

	_, err := repo.ListProducts(context.Background())
	assert.Error(t, err)
}
