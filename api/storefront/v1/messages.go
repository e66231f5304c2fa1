// Package storefrontv1 defines the wire messages and service descriptor of
// omnipos.storefront.v1.StorefrontService. Messages travel as JSON through
// the pkg/grpcjson codec; amounts are decimal strings with two places.
package storefrontv1

type Product struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CategoryId  string   `json:"category_id,omitempty"`
	Price       string   `json:"price"`
	BasePrice   string   `json:"base_price"`
	OnSale      bool     `json:"on_sale"`
	InStock     bool     `json:"in_stock"`
	Tags        []string `json:"tags,omitempty"`
}

type Category struct {
	Id       string   `json:"id"`
	Label    string   `json:"label"`
	RuleKind string   `json:"rule_kind"`
	Ids      []string `json:"ids,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type FilterProductsRequest struct {
	CategoryId      string `json:"category_id,omitempty"`
	Query           string `json:"query,omitempty"`
	MinPrice        string `json:"min_price,omitempty"`
	MaxPrice        string `json:"max_price,omitempty"`
	InStock         bool   `json:"in_stock,omitempty"`
	OnSale          bool   `json:"on_sale,omitempty"`
	IncludeInactive bool   `json:"include_inactive,omitempty"`
}

type ProductsResponse struct {
	Products []*Product `json:"products"`
}

type RankSimilarRequest struct {
	ProductId string `json:"product_id"`
	Limit     int32  `json:"limit"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type StartSessionRequest struct {
	CustomerRef string `json:"customer_ref,omitempty"`
}

type StartSessionResponse struct {
	SessionId string `json:"session_id"`
}

// SessionRequest addresses a session. SessionId may be left empty when the
// x-session-id metadata key is set.
type SessionRequest struct {
	SessionId string `json:"session_id,omitempty"`
}

type CompositeRequest struct {
	SessionId      string   `json:"session_id,omitempty"`
	ProductId      string   `json:"product_id"`
	Size           string   `json:"size,omitempty"`
	SecondFlavorId string   `json:"second_flavor_id,omitempty"`
	AddOnId        string   `json:"add_on_id,omitempty"`
	ExtraIds       []string `json:"extra_ids,omitempty"`
	Quantity       int32    `json:"quantity,omitempty"`
}

type PriceCompositeResponse struct {
	Name       string `json:"name"`
	PriceClass string `json:"price_class,omitempty"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"line_total"`
}

type CartLine struct {
	LineId    string   `json:"line_id"`
	ProductId string   `json:"product_id"`
	Name      string   `json:"name"`
	Size      string   `json:"size,omitempty"`
	Flavors   []string `json:"flavors"`
	AddOn     string   `json:"add_on,omitempty"`
	Extras    []string `json:"extras,omitempty"`
	Quantity  int32    `json:"quantity"`
	UnitPrice string   `json:"unit_price"`
	LineTotal string   `json:"line_total"`
}

type Totals struct {
	Subtotal   string `json:"subtotal"`
	Shipping   string `json:"shipping"`
	Tax        string `json:"tax"`
	Discount   string `json:"discount"`
	GrandTotal string `json:"grand_total"`
}

type Cart struct {
	SessionId  string      `json:"session_id"`
	Lines      []*CartLine `json:"lines"`
	TotalItems int32       `json:"total_items"`
	CouponCode string      `json:"coupon_code,omitempty"`
	Totals     *Totals     `json:"totals"`
}

type ConfigureCompositeResponse struct {
	Line *CartLine `json:"line"`
	Cart *Cart     `json:"cart"`
}

type RemoveLineRequest struct {
	SessionId string `json:"session_id,omitempty"`
	LineId    string `json:"line_id"`
}

type SetLineQuantityRequest struct {
	SessionId string `json:"session_id,omitempty"`
	LineId    string `json:"line_id"`
	Quantity  int32  `json:"quantity"`
}

type ApplyCouponRequest struct {
	SessionId string `json:"session_id,omitempty"`
	Code      string `json:"code"`
	// Replace drops the active coupon even when Code turns out to be unknown.
	Replace bool `json:"replace,omitempty"`
}

type ApplyCouponResponse struct {
	Discount string `json:"discount"`
	Cart     *Cart  `json:"cart"`
}

type PlaceOrderResponse struct {
	OrderId string  `json:"order_id"`
	Totals  *Totals `json:"totals"`
}
