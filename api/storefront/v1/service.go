package storefrontv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "omnipos.storefront.v1.StorefrontService"

type StorefrontServiceServer interface {
	FilterProducts(context.Context, *FilterProductsRequest) (*ProductsResponse, error)
	RankSimilar(context.Context, *RankSimilarRequest) (*ProductsResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error)
	ConfigureComposite(context.Context, *CompositeRequest) (*ConfigureCompositeResponse, error)
	PriceComposite(context.Context, *CompositeRequest) (*PriceCompositeResponse, error)
	RemoveLine(context.Context, *RemoveLineRequest) (*Cart, error)
	SetLineQuantity(context.Context, *SetLineQuantityRequest) (*Cart, error)
	GetCart(context.Context, *SessionRequest) (*Cart, error)
	ApplyCoupon(context.Context, *ApplyCouponRequest) (*ApplyCouponResponse, error)
	RemoveCoupon(context.Context, *SessionRequest) (*Cart, error)
	Quote(context.Context, *SessionRequest) (*Totals, error)
	PlaceOrder(context.Context, *SessionRequest) (*PlaceOrderResponse, error)
	EndSession(context.Context, *SessionRequest) (*emptypb.Empty, error)
}

func RegisterStorefrontServiceServer(s grpc.ServiceRegistrar, srv StorefrontServiceServer) {
	s.RegisterService(&StorefrontService_ServiceDesc, srv)
}

func unary[Req, Resp any](name string, call func(StorefrontServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(StorefrontServiceServer), ctx, req.(*Req))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the gRPC path of a storefront method.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

var StorefrontService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("FilterProducts", StorefrontServiceServer.FilterProducts),
		unary("RankSimilar", StorefrontServiceServer.RankSimilar),
		unary("ListCategories", StorefrontServiceServer.ListCategories),
		unary("StartSession", StorefrontServiceServer.StartSession),
		unary("ConfigureComposite", StorefrontServiceServer.ConfigureComposite),
		unary("PriceComposite", StorefrontServiceServer.PriceComposite),
		unary("RemoveLine", StorefrontServiceServer.RemoveLine),
		unary("SetLineQuantity", StorefrontServiceServer.SetLineQuantity),
		unary("GetCart", StorefrontServiceServer.GetCart),
		unary("ApplyCoupon", StorefrontServiceServer.ApplyCoupon),
		unary("RemoveCoupon", StorefrontServiceServer.RemoveCoupon),
		unary("Quote", StorefrontServiceServer.Quote),
		unary("PlaceOrder", StorefrontServiceServer.PlaceOrder),
		unary("EndSession", StorefrontServiceServer.EndSession),
	},
	Streams: []grpc.StreamDesc{},
}
