package handler

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/composite"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	apperrors "github.com/fekuna/omnipos-storefront-service/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusError maps a domain error to a gRPC status with a message in the
// caller's language.
func (h *StorefrontHandler) statusError(ctx context.Context, err error) error {
	code, messageID, data := classify(err)
	if code == codes.Internal {
		h.logger.Error("unexpected storefront error", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
	if code == codes.Unavailable {
		h.logger.Warn("external service failure", zap.Error(err))
	}
	if messageID == "" {
		return status.Error(code, err.Error())
	}
	return status.Error(code, h.translator.Localize(messageID, data, auth.GetLanguages(ctx)...))
}

func classify(err error) (codes.Code, string, map[string]string) {
	var (
		verr *composite.ValidationError
		nf   *apperrors.ErrNotFound
		cerr *couponError
		aerr *amountError
	)
	switch {
	case errors.As(err, &verr):
		return codes.InvalidArgument, string(verr.Kind), nil
	case errors.Is(err, composite.ErrUnknownSize):
		return codes.InvalidArgument, "UnknownSize", nil
	case errors.Is(err, composite.ErrInvalidFlavorCount):
		return codes.InvalidArgument, "InvalidFlavorCount", nil
	case errors.Is(err, composite.ErrInvalidQuantity):
		return codes.InvalidArgument, "InvalidQuantity", nil
	case errors.Is(err, coupon.ErrNotFound):
		code := ""
		if errors.As(err, &cerr) {
			code = cerr.code
		}
		return codes.NotFound, "CouponNotFound", map[string]string{"Code": code}
	case errors.Is(err, cart.ErrLineNotFound):
		return codes.NotFound, "LineNotFound", nil
	case errors.Is(err, checkout.ErrEmptyCart):
		return codes.FailedPrecondition, "EmptyCart", nil
	case errors.As(err, &nf):
		switch nf.Resource {
		case "session":
			return codes.NotFound, "SessionNotFound", nil
		case "category":
			return codes.NotFound, "CategoryNotFound", nil
		default:
			return codes.NotFound, "ProductNotFound", nil
		}
	case apperrors.IsExternal(err):
		return codes.Unavailable, "ExternalService", nil
	case errors.Is(err, context.Canceled):
		return codes.Canceled, "", nil
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded, "", nil
	case errors.As(err, &aerr):
		return codes.InvalidArgument, "InvalidAmount", map[string]string{"Field": aerr.field}
	}
	return codes.Internal, "", nil
}

// couponError remembers the code the caller typed so the message can echo it.
type couponError struct {
	code string
	err  error
}

func (e *couponError) Error() string { return e.err.Error() }
func (e *couponError) Unwrap() error { return e.err }

type amountError struct {
	field string
	err   error
}

func (e *amountError) Error() string { return e.field + ": " + e.err.Error() }
func (e *amountError) Unwrap() error { return e.err }
