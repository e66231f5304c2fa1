package storefrontv1

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// StorefrontServiceClient calls the service over a connection, always with
// the JSON content-subtype.
type StorefrontServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStorefrontServiceClient(cc grpc.ClientConnInterface) *StorefrontServiceClient {
	return &StorefrontServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(grpcjson.Name)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StorefrontServiceClient) FilterProducts(ctx context.Context, in *FilterProductsRequest, opts ...grpc.CallOption) (*ProductsResponse, error) {
	return invoke[ProductsResponse](ctx, c.cc, "FilterProducts", in, opts)
}

func (c *StorefrontServiceClient) RankSimilar(ctx context.Context, in *RankSimilarRequest, opts ...grpc.CallOption) (*ProductsResponse, error) {
	return invoke[ProductsResponse](ctx, c.cc, "RankSimilar", in, opts)
}

func (c *StorefrontServiceClient) ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, "ListCategories", in, opts)
}

func (c *StorefrontServiceClient) StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*StartSessionResponse, error) {
	return invoke[StartSessionResponse](ctx, c.cc, "StartSession", in, opts)
}

func (c *StorefrontServiceClient) ConfigureComposite(ctx context.Context, in *CompositeRequest, opts ...grpc.CallOption) (*ConfigureCompositeResponse, error) {
	return invoke[ConfigureCompositeResponse](ctx, c.cc, "ConfigureComposite", in, opts)
}

func (c *StorefrontServiceClient) PriceComposite(ctx context.Context, in *CompositeRequest, opts ...grpc.CallOption) (*PriceCompositeResponse, error) {
	return invoke[PriceCompositeResponse](ctx, c.cc, "PriceComposite", in, opts)
}

func (c *StorefrontServiceClient) RemoveLine(ctx context.Context, in *RemoveLineRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, "RemoveLine", in, opts)
}

func (c *StorefrontServiceClient) SetLineQuantity(ctx context.Context, in *SetLineQuantityRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, "SetLineQuantity", in, opts)
}

func (c *StorefrontServiceClient) GetCart(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, "GetCart", in, opts)
}

func (c *StorefrontServiceClient) ApplyCoupon(ctx context.Context, in *ApplyCouponRequest, opts ...grpc.CallOption) (*ApplyCouponResponse, error) {
	return invoke[ApplyCouponResponse](ctx, c.cc, "ApplyCoupon", in, opts)
}

func (c *StorefrontServiceClient) RemoveCoupon(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, "RemoveCoupon", in, opts)
}

func (c *StorefrontServiceClient) Quote(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Totals, error) {
	return invoke[Totals](ctx, c.cc, "Quote", in, opts)
}

func (c *StorefrontServiceClient) PlaceOrder(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*PlaceOrderResponse, error) {
	return invoke[PlaceOrderResponse](ctx, c.cc, "PlaceOrder", in, opts)
}

func (c *StorefrontServiceClient) EndSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "EndSession", in, opts)
}
