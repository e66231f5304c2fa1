package storefrontv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestServiceDescRegisters(t *testing.T) {
	s := grpc.NewServer()
	defer s.Stop()
	RegisterStorefrontServiceServer(s, nil)

	info, ok := s.GetServiceInfo()[ServiceName]
	require.True(t, ok)
	assert.Len(t, info.Methods, 14)
	// No proto file backs the JSON messages, so none is advertised.
	assert.Nil(t, info.Metadata)
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/omnipos.storefront.v1.StorefrontService/PlaceOrder", FullMethod("PlaceOrder"))
}
