package handler

import (
	"context"
	"strings"

	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/composite"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	apperrors "github.com/fekuna/omnipos-storefront-service/pkg/errors"
	"github.com/fekuna/omnipos-storefront-service/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

type StorefrontHandler struct {
	catalog    catalog.UseCase
	checkout   checkout.UseCase
	sessions   *session.Manager
	table      *composite.PriceTable
	translator *i18n.Translator
	logger     logger.ZapLogger
}

var _ storefrontv1.StorefrontServiceServer = (*StorefrontHandler)(nil)

func NewStorefrontHandler(
	catalogUC catalog.UseCase,
	checkoutUC checkout.UseCase,
	sessions *session.Manager,
	table *composite.PriceTable,
	translator *i18n.Translator,
	log logger.ZapLogger,
) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:    catalogUC,
		checkout:   checkoutUC,
		sessions:   sessions,
		table:      table,
		translator: translator,
		logger:     log,
	}
}

// --- Catalog ---

func (h *StorefrontHandler) FilterProducts(ctx context.Context, req *storefrontv1.FilterProductsRequest) (*storefrontv1.ProductsResponse, error) {
	filters := &dto.ProductFilters{
		CategoryID:      req.CategoryId,
		Query:           strings.TrimSpace(req.Query),
		InStock:         req.InStock,
		OnSale:          req.OnSale,
		IncludeInactive: req.IncludeInactive,
	}
	var err error
	if filters.MinPrice, err = parseAmount("min_price", req.MinPrice); err != nil {
		return nil, h.statusError(ctx, err)
	}
	if filters.MaxPrice, err = parseAmount("max_price", req.MaxPrice); err != nil {
		return nil, h.statusError(ctx, err)
	}

	products, err := h.catalog.FilterProducts(ctx, filters)
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	return &storefrontv1.ProductsResponse{Products: mapProductsToProto(products)}, nil
}

func (h *StorefrontHandler) RankSimilar(ctx context.Context, req *storefrontv1.RankSimilarRequest) (*storefrontv1.ProductsResponse, error) {
	products, err := h.catalog.RankSimilar(ctx, req.ProductId, int(req.Limit))
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	return &storefrontv1.ProductsResponse{Products: mapProductsToProto(products)}, nil
}

func (h *StorefrontHandler) ListCategories(ctx context.Context, _ *storefrontv1.ListCategoriesRequest) (*storefrontv1.ListCategoriesResponse, error) {
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	out := make([]*storefrontv1.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, mapCategoryToProto(c))
	}
	return &storefrontv1.ListCategoriesResponse{Categories: out}, nil
}

// --- Session ---

func (h *StorefrontHandler) StartSession(ctx context.Context, req *storefrontv1.StartSessionRequest) (*storefrontv1.StartSessionResponse, error) {
	customerRef := req.CustomerRef
	if customerRef == "" {
		customerRef = auth.GetCustomerRef(ctx)
	}
	s := h.sessions.Create(customerRef)
	h.logger.Debug("session started", zap.String("session_id", s.ID))
	return &storefrontv1.StartSessionResponse{SessionId: s.ID}, nil
}

func (h *StorefrontHandler) EndSession(ctx context.Context, req *storefrontv1.SessionRequest) (*emptypb.Empty, error) {
	if err := h.sessions.Discard(sessionID(ctx, req.SessionId)); err != nil {
		return nil, h.statusError(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

// --- Composite & Cart ---

func (h *StorefrontHandler) ConfigureComposite(ctx context.Context, req *storefrontv1.CompositeRequest) (*storefrontv1.ConfigureCompositeResponse, error) {
	sel, err := h.buildSelection(ctx, req)
	if err != nil {
		return nil, h.statusError(ctx, err)
	}

	resp := &storefrontv1.ConfigureCompositeResponse{}
	err = h.sessions.With(sessionID(ctx, req.SessionId), func(s *session.Session) error {
		line, err := s.Cart.Add(sel, h.table)
		if err != nil {
			return err
		}
		resp.Line = mapLineToProto(line)
		resp.Cart = h.cartView(s)
		return nil
	})
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	return resp, nil
}

func (h *StorefrontHandler) PriceComposite(ctx context.Context, req *storefrontv1.CompositeRequest) (*storefrontv1.PriceCompositeResponse, error) {
	sel, err := h.buildSelection(ctx, req)
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	unit, line, err := composite.PriceComposite(sel, h.table)
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	resp := &storefrontv1.PriceCompositeResponse{
		Name:      sel.DisplayName(),
		UnitPrice: model.FormatMoney(unit),
		LineTotal: model.FormatMoney(line),
	}
	if h.table.IsSized(sel.Origin()) {
		resp.PriceClass = string(h.table.ClassOf(sel.Flavors))
	}
	return resp, nil
}

func (h *StorefrontHandler) RemoveLine(ctx context.Context, req *storefrontv1.RemoveLineRequest) (*storefrontv1.Cart, error) {
	return h.mutateCart(ctx, req.SessionId, func(s *session.Session) error {
		return s.Cart.Remove(req.LineId)
	})
}

func (h *StorefrontHandler) SetLineQuantity(ctx context.Context, req *storefrontv1.SetLineQuantityRequest) (*storefrontv1.Cart, error) {
	return h.mutateCart(ctx, req.SessionId, func(s *session.Session) error {
		return s.Cart.SetQuantity(req.LineId, int(req.Quantity))
	})
}

func (h *StorefrontHandler) GetCart(ctx context.Context, req *storefrontv1.SessionRequest) (*storefrontv1.Cart, error) {
	return h.mutateCart(ctx, req.SessionId, func(*session.Session) error { return nil })
}

// --- Coupon ---

func (h *StorefrontHandler) ApplyCoupon(ctx context.Context, req *storefrontv1.ApplyCouponRequest) (*storefrontv1.ApplyCouponResponse, error) {
	resp := &storefrontv1.ApplyCouponResponse{}
	err := h.sessions.With(sessionID(ctx, req.SessionId), func(s *session.Session) error {
		apply := s.Coupons.Apply
		if req.Replace {
			apply = s.Coupons.Replace
		}
		discount, err := apply(req.Code, s.Cart.Subtotal())
		if err != nil {
			return &couponError{code: req.Code, err: err}
		}
		resp.Discount = model.FormatMoney(discount)
		resp.Cart = h.cartView(s)
		return nil
	})
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	return resp, nil
}

func (h *StorefrontHandler) RemoveCoupon(ctx context.Context, req *storefrontv1.SessionRequest) (*storefrontv1.Cart, error) {
	return h.mutateCart(ctx, req.SessionId, func(s *session.Session) error {
		s.Coupons.Remove()
		return nil
	})
}

// --- Checkout ---

func (h *StorefrontHandler) Quote(ctx context.Context, req *storefrontv1.SessionRequest) (*storefrontv1.Totals, error) {
	var totals model.Totals
	err := h.sessions.With(sessionID(ctx, req.SessionId), func(s *session.Session) error {
		totals = h.checkout.Quote(s)
		return nil
	})
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	return mapTotalsToProto(totals), nil
}

func (h *StorefrontHandler) PlaceOrder(ctx context.Context, req *storefrontv1.SessionRequest) (*storefrontv1.PlaceOrderResponse, error) {
	var receipt *checkout.Receipt
	err := h.sessions.With(sessionID(ctx, req.SessionId), func(s *session.Session) error {
		var err error
		receipt, err = h.checkout.PlaceOrder(ctx, s)
		return err
	})
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	return &storefrontv1.PlaceOrderResponse{
		OrderId: receipt.OrderID,
		Totals:  mapTotalsToProto(receipt.Payload.Totals),
	}, nil
}

// --- helpers ---

func (h *StorefrontHandler) mutateCart(ctx context.Context, id string, fn func(*session.Session) error) (*storefrontv1.Cart, error) {
	var view *storefrontv1.Cart
	err := h.sessions.With(sessionID(ctx, id), func(s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		view = h.cartView(s)
		return nil
	})
	if err != nil {
		return nil, h.statusError(ctx, err)
	}
	return view, nil
}

// cartView must be called with the session lock held.
func (h *StorefrontHandler) cartView(s *session.Session) *storefrontv1.Cart {
	lines := s.Cart.Lines()
	view := &storefrontv1.Cart{
		SessionId:  s.ID,
		Lines:      make([]*storefrontv1.CartLine, 0, len(lines)),
		TotalItems: int32(s.Cart.TotalItems()),
		Totals:     mapTotalsToProto(h.checkout.Quote(s)),
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, mapLineToProto(l))
	}
	if c, ok := s.Coupons.Active(); ok {
		view.CouponCode = c.Code
	}
	return view
}

// buildSelection replays the request through a configurator so every step is
// validated in the order a customer would take it.
func (h *StorefrontHandler) buildSelection(ctx context.Context, req *storefrontv1.CompositeRequest) (model.CompositeSelection, error) {
	snap, err := h.catalog.Snapshot(ctx)
	if err != nil {
		return model.CompositeSelection{}, err
	}
	lookup := func(id string) (model.Product, error) {
		p, ok := snap.Product(id)
		if !ok {
			return model.Product{}, &apperrors.ErrNotFound{Resource: "product", ID: id}
		}
		return p, nil
	}

	origin, err := lookup(req.ProductId)
	if err != nil {
		return model.CompositeSelection{}, err
	}
	c := composite.New(origin, h.table)

	if req.Size != "" {
		if err := c.SetSize(model.SizeTier(req.Size)); err != nil {
			return model.CompositeSelection{}, err
		}
	}
	if req.SecondFlavorId != "" {
		p, err := lookup(req.SecondFlavorId)
		if err != nil {
			return model.CompositeSelection{}, err
		}
		if err := c.ToggleFlavor(p); err != nil {
			return model.CompositeSelection{}, err
		}
	}
	if req.AddOnId != "" {
		p, err := lookup(req.AddOnId)
		if err != nil {
			return model.CompositeSelection{}, err
		}
		if err := c.SetAddOn(p); err != nil {
			return model.CompositeSelection{}, err
		}
	}
	for _, id := range req.ExtraIds {
		p, err := lookup(id)
		if err != nil {
			return model.CompositeSelection{}, err
		}
		if err := c.ToggleExtra(p); err != nil {
			return model.CompositeSelection{}, err
		}
	}
	qty := int(req.Quantity)
	if qty == 0 {
		qty = 1
	}
	if err := c.SetQuantity(qty); err != nil {
		return model.CompositeSelection{}, err
	}
	return c.Commit()
}

func sessionID(ctx context.Context, fromRequest string) string {
	if fromRequest != "" {
		return fromRequest
	}
	return auth.GetSessionID(ctx)
}

func parseAmount(field, raw string) (*model.Money, error) {
	if raw == "" {
		return nil, nil
	}
	m, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &amountError{field: field, err: err}
	}
	return &m, nil
}
