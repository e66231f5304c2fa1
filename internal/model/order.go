package model

type Totals struct {
	Subtotal   Money `json:"subtotal"`
	Shipping   Money `json:"shipping"`
	Tax        Money `json:"tax"`
	Discount   Money `json:"discount"`
	GrandTotal Money `json:"grand_total"`
}

// ItemOptions is the configuration metadata carried with each order item.
type ItemOptions struct {
	Size    SizeTier `json:"size,omitempty"`
	Flavors []string `json:"flavors"`
	AddOn   string   `json:"add_on,omitempty"`
	Extras  []string `json:"extras,omitempty"`
}

type OrderItem struct {
	Name      string      `json:"name"`
	ProductID string      `json:"product_id"`
	UnitPrice Money       `json:"unit_price"`
	Quantity  int         `json:"quantity"`
	Options   ItemOptions `json:"options"`
}

// OrderPayload is what gets handed to the order gateway. Items stay a plain
// slice here; the flattened wire form is produced by checkout/codec.
type OrderPayload struct {
	CustomerRef string      `json:"customer_ref"`
	CouponCode  string      `json:"coupon_code,omitempty"`
	Items       []OrderItem `json:"items"`
	Totals      Totals      `json:"totals"`
}
