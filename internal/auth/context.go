package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	MetadataSessionID   = "x-session-id"
	MetadataCustomerRef = "x-customer-ref"
	MetadataLanguage    = "accept-language"
)

// CallerContext is what the storefront knows about the caller of one request.
type CallerContext struct {
	SessionID   string
	CustomerRef string
	Languages   []string
}

type callerKey struct{}

// UnaryServerInterceptor copies caller metadata into the context once so
// handlers read it with FromContext.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(WithCaller(ctx, callerFromMetadata(ctx)), req)
	}
}

func WithCaller(ctx context.Context, c CallerContext) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// FromContext returns the caller stored by the interceptor, falling back to
// the raw incoming metadata.
func FromContext(ctx context.Context) CallerContext {
	if c, ok := ctx.Value(callerKey{}).(CallerContext); ok {
		return c
	}
	return callerFromMetadata(ctx)
}

func GetSessionID(ctx context.Context) string {
	return FromContext(ctx).SessionID
}

func GetCustomerRef(ctx context.Context) string {
	return FromContext(ctx).CustomerRef
}

func GetLanguages(ctx context.Context) []string {
	return FromContext(ctx).Languages
}

func callerFromMetadata(ctx context.Context) CallerContext {
	var c CallerContext
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return c
	}
	if val := md.Get(MetadataSessionID); len(val) > 0 {
		c.SessionID = val[0]
	}
	if val := md.Get(MetadataCustomerRef); len(val) > 0 {
		c.CustomerRef = val[0]
	}
	for _, v := range md.Get(MetadataLanguage) {
		// go-i18n parses full Accept-Language values, q-weights included.
		if v = strings.TrimSpace(v); v != "" {
			c.Languages = append(c.Languages, v)
		}
	}
	return c
}
