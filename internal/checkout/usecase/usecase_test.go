package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/composite"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	apperrors "github.com/fekuna/omnipos-storefront-service/pkg/errors"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	orderID string
	err     error
	got     []model.OrderPayload
}

func (g *fakeGateway) Submit(_ context.Context, p model.OrderPayload) (string, error) {
	g.got = append(g.got, p)
	return g.orderID, g.err
}

type fakePublisher struct {
	err    error
	keys   []string
	values [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, key string, value []byte) error {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return p.err
}

var flatShipping = checkout.Pricing{ShippingFee: model.MoneyFromString("15.90")}

// newSession returns a session holding one 100.00 line.
func newSession(t *testing.T) *session.Session {
	t.Helper()
	reg, err := coupon.NewRegistry([]model.Coupon{
		{Code: "DESCONTO10", Kind: model.CouponPercentage, Value: model.MoneyFromString("10")},
	})
	require.NoError(t, err)
	table, err := composite.NewPriceTable([]composite.TierPrices{
		{Size: model.SizeG, Classic: model.MoneyFromString("50.00"), Special: model.MoneyFromString("60.00")},
	}, nil, []string{"pizzas"})
	require.NoError(t, err)

	s := session.NewManager(reg, 0).Create("customer-7")
	_, err = s.Cart.Add(model.CompositeSelection{
		Size:     model.SizeG,
		Flavors:  []model.Product{{ID: "calabresa", Name: "Calabresa", CategoryID: "pizzas"}},
		Quantity: 2,
	}, table)
	require.NoError(t, err)
	return s
}

func TestQuoteWithCoupon(t *testing.T) {
	s := newSession(t)
	_, err := s.Coupons.Apply("DESCONTO10", s.Cart.Subtotal())
	require.NoError(t, err)

	uc := NewCheckoutUseCase(flatShipping, &fakeGateway{}, nil, logger.NewNop())
	totals := uc.Quote(s)
	assert.Equal(t, "100.00", model.FormatMoney(totals.Subtotal))
	assert.Equal(t, "10.00", model.FormatMoney(totals.Discount))
	assert.Equal(t, "105.90", model.FormatMoney(totals.GrandTotal))
}

func TestPlaceOrder(t *testing.T) {
	s := newSession(t)
	_, err := s.Coupons.Apply("DESCONTO10", s.Cart.Subtotal())
	require.NoError(t, err)

	gw := &fakeGateway{orderID: "ord-1"}
	pub := &fakePublisher{}
	uc := NewCheckoutUseCase(flatShipping, gw, pub, logger.NewNop())

	receipt, err := uc.PlaceOrder(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", receipt.OrderID)
	assert.Equal(t, "DESCONTO10", receipt.Payload.CouponCode)
	assert.Equal(t, "customer-7", receipt.Payload.CustomerRef)
	require.Len(t, gw.got, 1)

	require.Len(t, pub.keys, 1)
	assert.Equal(t, "ord-1", pub.keys[0])
	var evt OrderCreatedEvent
	require.NoError(t, json.Unmarshal(pub.values[0], &evt))
	assert.Equal(t, EventOrderCreated, evt.Type)
	assert.Equal(t, 1, evt.ItemCount)
	assert.Equal(t, "105.90", model.FormatMoney(evt.GrandTotal))

	assert.Zero(t, s.Cart.Len())
	_, active := s.Coupons.Active()
	assert.False(t, active)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	s := newSession(t)
	s.Cart.Clear()
	gw := &fakeGateway{orderID: "ord-1"}

	_, err := NewCheckoutUseCase(flatShipping, gw, nil, logger.NewNop()).PlaceOrder(context.Background(), s)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Empty(t, gw.got)
}

func TestPlaceOrderGatewayFailureKeepsCart(t *testing.T) {
	s := newSession(t)
	gw := &fakeGateway{err: apperrors.External("order gateway", errors.New("connection refused"))}
	pub := &fakePublisher{}

	_, err := NewCheckoutUseCase(flatShipping, gw, pub, logger.NewNop()).PlaceOrder(context.Background(), s)
	assert.True(t, apperrors.IsExternal(err))
	assert.Equal(t, 1, s.Cart.Len())
	assert.Empty(t, pub.keys)
}

func TestPlaceOrderPublishFailureIsNotFatal(t *testing.T) {
	s := newSession(t)
	pub := &fakePublisher{err: errors.New("broker down")}

	receipt, err := NewCheckoutUseCase(flatShipping, &fakeGateway{orderID: "ord-2"}, pub, logger.NewNop()).PlaceOrder(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "ord-2", receipt.OrderID)
	assert.Zero(t, s.Cart.Len())
}
