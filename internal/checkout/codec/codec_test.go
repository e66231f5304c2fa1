package codec

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadWith(lines int) model.OrderPayload {
	p := model.OrderPayload{
		CustomerRef: "customer-42",
		CouponCode:  "DESCONTO10",
		Totals: model.Totals{
			Subtotal:   model.MoneyFromString("100.00"),
			Shipping:   model.MoneyFromString("15.90"),
			Tax:        model.MoneyFromString("0"),
			Discount:   model.MoneyFromString("10.00"),
			GrandTotal: model.MoneyFromString("105.90"),
		},
	}
	for n := 0; n < lines; n++ {
		p.Items = append(p.Items, model.OrderItem{
			Name:      fmt.Sprintf("Calabresa / Flavor %d", n),
			ProductID: fmt.Sprintf("p-%d", n),
			UnitPrice: model.MoneyFromString("46.90"),
			Quantity:  n + 1,
			Options: model.ItemOptions{
				Size:    model.SizeM,
				Flavors: []string{"calabresa", fmt.Sprintf("flavor-%d", n)},
				AddOn:   "borda-catupiry",
				Extras:  []string{"bacon"},
			},
		})
	}
	return p
}

func TestEncodeLayout(t *testing.T) {
	v, err := Encode(payloadWith(2))
	require.NoError(t, err)

	assert.Equal(t, "p-0", v.Get("product_id_0"))
	assert.Equal(t, "p-1", v.Get("product_id_1"))
	assert.Empty(t, v.Get("product_id_2"))
	assert.Equal(t, "46.90", v.Get("product_price_0"))
	assert.Equal(t, "2", v.Get("product_qty_1"))
	assert.Equal(t, "Calabresa / Flavor 0", v.Get("item_0"))
	assert.JSONEq(t, `{"size":"M","flavors":["calabresa","flavor-0"],"add_on":"borda-catupiry","extras":["bacon"]}`, v.Get("options_0"))
	assert.Equal(t, "105.90", v.Get("total"))
	assert.Equal(t, "DESCONTO10", v.Get("coupon_code"))
}

func TestRoundTrip(t *testing.T) {
	for lines := 0; lines <= 5; lines++ {
		t.Run(fmt.Sprintf("%d lines", lines), func(t *testing.T) {
			encoded, err := Encode(payloadWith(lines))
			require.NoError(t, err)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			assert.Len(t, decoded.Items, lines)

			again, err := Encode(decoded)
			require.NoError(t, err)
			assert.Equal(t, encoded, again)

			// The wire form goes through a real form body unchanged.
			parsed, err := url.ParseQuery(encoded.Encode())
			require.NoError(t, err)
			fromBody, err := Decode(parsed)
			require.NoError(t, err)
			assert.Equal(t, decoded, fromBody)
		})
	}
}

func TestDecodeStopsAtFirstGap(t *testing.T) {
	v, err := Encode(payloadWith(3))
	require.NoError(t, err)
	v.Del("product_id_1")

	decoded, err := Decode(v)
	require.NoError(t, err)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, "p-0", decoded.Items[0].ProductID)
}

func TestDecodeRejectsMalformedFields(t *testing.T) {
	cases := map[string]string{
		"product_qty_0":   "two",
		"product_price_0": "4x.90",
		"options_0":       "{",
		"total":           "lots",
	}
	for field, bad := range cases {
		t.Run(field, func(t *testing.T) {
			v, err := Encode(payloadWith(1))
			require.NoError(t, err)
			v.Set(field, bad)

			_, err = Decode(v)
			assert.ErrorContains(t, err, field)
		})
	}
}

func TestEncodeRejectsSubCentAmounts(t *testing.T) {
	t.Run("unit price", func(t *testing.T) {
		p := payloadWith(1)
		p.Items[0].UnitPrice = model.MoneyFromString("40.905")

		_, err := Encode(p)
		assert.ErrorIs(t, err, ErrSubCent)
		assert.ErrorContains(t, err, "product_price_0")
	})
	t.Run("total", func(t *testing.T) {
		p := payloadWith(1)
		p.Totals.GrandTotal = model.MoneyFromString("105.901")

		_, err := Encode(p)
		assert.ErrorIs(t, err, ErrSubCent)
		assert.ErrorContains(t, err, "total")
	})
	t.Run("trailing zeros are cents", func(t *testing.T) {
		p := payloadWith(1)
		p.Items[0].UnitPrice = model.MoneyFromString("40.9000")

		v, err := Encode(p)
		require.NoError(t, err)
		decoded, err := Decode(v)
		require.NoError(t, err)
		assert.True(t, p.Items[0].UnitPrice.Equal(decoded.Items[0].UnitPrice))
	})
}
