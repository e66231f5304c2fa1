// Package codec flattens order payloads into the index-suffixed form field
// layout the order gateway and order tracking read. Lines are numbered from
// zero and a reader stops at the first index without a product_id field.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

const (
	fieldItem      = "item_"
	fieldProductID = "product_id_"
	fieldPrice     = "product_price_"
	fieldQty       = "product_qty_"
	fieldOptions   = "options_"

	FieldCustomerRef = "customer_ref"
	FieldCouponCode  = "coupon_code"
	FieldSubtotal    = "subtotal"
	FieldShipping    = "shipping"
	FieldTax         = "tax"
	FieldDiscount    = "discount"
	FieldTotal       = "total"
)

// ErrSubCent is returned by Encode for an amount the two-decimal wire format
// cannot carry.
var ErrSubCent = errors.New("amount has sub-cent digits")

func key(prefix string, n int) string {
	return prefix + strconv.Itoa(n)
}

// Encode flattens payload. Money is written with two decimal places; an
// amount with sub-cent digits is rejected rather than rounded.
func Encode(payload model.OrderPayload) (url.Values, error) {
	v := url.Values{}
	for n, item := range payload.Items {
		opts, err := json.Marshal(item.Options)
		if err != nil {
			return nil, fmt.Errorf("encode options_%d: %w", n, err)
		}
		price, err := cents(key(fieldPrice, n), item.UnitPrice)
		if err != nil {
			return nil, err
		}
		v.Set(key(fieldItem, n), item.Name)
		v.Set(key(fieldProductID, n), item.ProductID)
		v.Set(key(fieldPrice, n), price)
		v.Set(key(fieldQty, n), strconv.Itoa(item.Quantity))
		v.Set(key(fieldOptions, n), string(opts))
	}
	v.Set(FieldCustomerRef, payload.CustomerRef)
	v.Set(FieldCouponCode, payload.CouponCode)

	t := payload.Totals
	for _, f := range []struct {
		name  string
		value model.Money
	}{
		{FieldSubtotal, t.Subtotal},
		{FieldShipping, t.Shipping},
		{FieldTax, t.Tax},
		{FieldDiscount, t.Discount},
		{FieldTotal, t.GrandTotal},
	} {
		s, err := cents(f.name, f.value)
		if err != nil {
			return nil, err
		}
		v.Set(f.name, s)
	}
	return v, nil
}

func cents(field string, m model.Money) (string, error) {
	if !model.IsCents(m) {
		return "", fmt.Errorf("encode %s=%s: %w", field, m.String(), ErrSubCent)
	}
	return model.FormatMoney(m), nil
}

// Decode rebuilds a payload from flattened fields. Indices after the first
// gap are ignored.
func Decode(v url.Values) (model.OrderPayload, error) {
	payload := model.OrderPayload{
		CustomerRef: v.Get(FieldCustomerRef),
		CouponCode:  v.Get(FieldCouponCode),
	}
	for n := 0; ; n++ {
		if _, ok := v[key(fieldProductID, n)]; !ok {
			break
		}
		item, err := decodeItem(v, n)
		if err != nil {
			return model.OrderPayload{}, err
		}
		payload.Items = append(payload.Items, item)
	}

	var err error
	t := &payload.Totals
	for _, f := range []struct {
		name string
		dst  *model.Money
	}{
		{FieldSubtotal, &t.Subtotal},
		{FieldShipping, &t.Shipping},
		{FieldTax, &t.Tax},
		{FieldDiscount, &t.Discount},
		{FieldTotal, &t.GrandTotal},
	} {
		if *f.dst, err = money(v, f.name); err != nil {
			return model.OrderPayload{}, err
		}
	}
	return payload, nil
}

func decodeItem(v url.Values, n int) (model.OrderItem, error) {
	item := model.OrderItem{
		Name:      v.Get(key(fieldItem, n)),
		ProductID: v.Get(key(fieldProductID, n)),
	}

	price, err := money(v, key(fieldPrice, n))
	if err != nil {
		return model.OrderItem{}, err
	}
	item.UnitPrice = price

	qtyField := key(fieldQty, n)
	qty, err := strconv.Atoi(v.Get(qtyField))
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("decode %s: %w", qtyField, err)
	}
	item.Quantity = qty

	optField := key(fieldOptions, n)
	if raw := v.Get(optField); raw != "" {
		if err := json.Unmarshal([]byte(raw), &item.Options); err != nil {
			return model.OrderItem{}, fmt.Errorf("decode %s: %w", optField, err)
		}
	}
	return item, nil
}

// money parses a field; a missing field reads as zero.
func money(v url.Values, field string) (model.Money, error) {
	raw := v.Get(field)
	if raw == "" {
		return decimal.Zero, nil
	}
	m, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode %s: %w", field, err)
	}
	return m, nil
}
