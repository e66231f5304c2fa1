package grpcjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestCodecRegistered(t *testing.T) {
	assert.NotNil(t, encoding.GetCodec(Name))
}

func TestCodecPlainStruct(t *testing.T) {
	type req struct {
		SessionID string `json:"session_id"`
		Limit     int    `json:"limit"`
	}
	c := Codec{}

	data, err := c.Marshal(&req{SessionID: "s1", Limit: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"s1","limit":4}`, string(data))

	var out req
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, req{SessionID: "s1", Limit: 4}, out)
}

func TestCodecProtoMessage(t *testing.T) {
	c := Codec{}

	data, err := c.Marshal(wrapperspb.String("DESCONTO10"))
	require.NoError(t, err)
	assert.JSONEq(t, `"DESCONTO10"`, string(data))

	out := &wrapperspb.StringValue{}
	require.NoError(t, c.Unmarshal(data, out))
	assert.Equal(t, "DESCONTO10", out.GetValue())

	data, err = c.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}
