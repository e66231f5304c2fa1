package handler

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	catalogusecase "github.com/fekuna/omnipos-storefront-service/internal/catalog/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	checkoutusecase "github.com/fekuna/omnipos-storefront-service/internal/checkout/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/composite"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	"github.com/fekuna/omnipos-storefront-service/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func money(s string) model.Money { return model.MoneyFromString(s) }

type staticRepo struct {
	products   []model.Product
	categories []model.Category
}

func (r *staticRepo) ListProducts(context.Context) ([]model.Product, error) {
	return r.products, nil
}

func (r *staticRepo) ListCategories(context.Context) ([]model.Category, error) {
	return r.categories, nil
}

func newCatalogRepo() *staticRepo {
	offer := money("39.90")
	return &staticRepo{
		products: []model.Product{
			{ID: "calabresa", Name: "Calabresa", Description: "Calabresa e cebola", BasePrice: money("40.90"), Stock: 10, CategoryID: "classic", Tags: []string{"carne"}, IsActive: true},
			{ID: "quatro-queijos", Name: "Quatro Queijos", BasePrice: money("40.90"), OfferPrice: &offer, Stock: 10, CategoryID: "classic", Tags: []string{"queijo"}, IsActive: true},
			{ID: "camarao", Name: "Camarão", BasePrice: money("48.90"), Stock: 3, CategoryID: "special", Tags: []string{"frutos-do-mar"}, IsActive: true},
			{ID: "borda-catupiry", Name: "Borda de Catupiry", BasePrice: money("6.00"), Stock: 50, CategoryID: "addons", IsActive: true},
			{ID: "bacon", Name: "Bacon extra", BasePrice: money("4.50"), Stock: 50, CategoryID: "extras", IsActive: true},
			{ID: "kit-festa", Name: "Kit Festa", BasePrice: money("100.00"), Stock: 2, CategoryID: "kits", IsActive: true},
			{ID: "guarana", Name: "Guaraná 2L", BasePrice: money("12.00"), Stock: 0, CategoryID: "drinks", IsActive: true},
		},
		categories: []model.Category{
			{ID: "pizzas", Label: "Pizzas", Rule: model.ByID{IDs: []string{"classic", "special"}}},
			{ID: "queijos", Label: "Queijos", Rule: model.Heuristic{Keywords: []string{"queijo"}}},
		},
	}
}

func newPriceTable(t testing.TB) *composite.PriceTable {
	table, err := composite.NewPriceTable([]composite.TierPrices{
		{Size: model.SizeP, Classic: money("32.90"), Special: money("39.90")},
		{Size: model.SizeM, Classic: money("40.90"), Special: money("48.90")},
		{Size: model.SizeG, Classic: money("52.90"), Special: money("62.90")},
		{Size: model.SizeGG, Classic: money("64.90"), Special: money("76.90")},
	}, []string{"special"}, []string{"classic", "special"})
	require.NoError(t, err)
	return table
}

type recordingGateway struct {
	mu       sync.Mutex
	err      error
	payloads []model.OrderPayload
}

func (g *recordingGateway) Submit(_ context.Context, p model.OrderPayload) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	g.payloads = append(g.payloads, p)
	return "ord-1", nil
}

func (g *recordingGateway) setErr(err error) {
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()
}

type harness struct {
	handler  *StorefrontHandler
	client   *storefrontv1.StorefrontServiceClient
	gateway  *recordingGateway
	sessions *session.Manager
}

// newHarness wires the handler over in-memory collaborators and serves it on
// a bufconn listener.
func newHarness(t testing.TB) *harness {
	reg, err := coupon.NewRegistry([]model.Coupon{
		{Code: "DESCONTO10", Kind: model.CouponPercentage, Value: money("10")},
		{Code: "FRETE15", Kind: model.CouponFixed, Value: money("15.00")},
	})
	require.NoError(t, err)
	translator, err := i18n.NewTranslator()
	require.NoError(t, err)

	log := logger.NewNop()
	gw := &recordingGateway{}
	sessions := session.NewManager(reg, time.Hour)
	catalogUC := catalogusecase.NewCatalogUseCase(newCatalogRepo(), nil, 0, log)
	checkoutUC := checkoutusecase.NewCheckoutUseCase(checkout.Pricing{ShippingFee: money("15.90")}, gw, nil, log)
	h := NewStorefrontHandler(catalogUC, checkoutUC, sessions, newPriceTable(t), translator, log)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(auth.UnaryServerInterceptor()))
	storefrontv1.RegisterStorefrontServiceServer(srv, h)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &harness{
		handler:  h,
		client:   storefrontv1.NewStorefrontServiceClient(conn),
		gateway:  gw,
		sessions: sessions,
	}
}
