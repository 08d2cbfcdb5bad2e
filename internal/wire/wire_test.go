package wire_test

import (
	"context"
	"fmt"
	"testing"

	"codeberg.org/mutker/errbridge/internal/carrier"
	"codeberg.org/mutker/errbridge/internal/errors"
	"codeberg.org/mutker/errbridge/internal/functions"
	"codeberg.org/mutker/errbridge/internal/result"
	"codeberg.org/mutker/errbridge/internal/shim"
	"codeberg.org/mutker/errbridge/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type divideRequest struct {
	A, B int
}

func divideHandler(_ context.Context, req any) (any, error) {
	in := req.(divideRequest)
	return wire.Unpack(shim.Call(functions.DivisionName, functions.DivisionOp(in.A, in.B)))
}

// roundTrip sends req through the server and client interceptors the way a
// real connection would chain them.
func roundTrip(t *testing.T, req divideRequest) (any, error) {
	t.Helper()

	server := wire.UnaryServerInterceptor()
	client := wire.UnaryClientInterceptor()

	var reply any
	invoker := func(ctx context.Context, method string, req, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		resp, err := server(ctx, req, &grpc.UnaryServerInfo{FullMethod: method}, divideHandler)
		reply = resp
		return err
	}

	err := client(context.Background(), "/functions.Functions/Division", req, nil, nil, invoker)

	return reply, err
}

func TestStatusRoundTrip(t *testing.T) {
	sent := carrier.New(functions.DivisorIsZero)
	defer sent.Release()

	st := wire.ToStatus(sent)
	assert.Equal(t, wire.Code, st.Code())
	assert.Equal(t, "divisor is zero", st.Message())

	received, err := wire.FromStatus(st)
	require.NoError(t, err)
	defer received.Release()

	got, ok := carrier.As[functions.DivByZero](received)
	require.True(t, ok)
	assert.Equal(t, functions.DivisorIsZero, got)
}

func TestStatusCarriesErrorInfo(t *testing.T) {
	c := carrier.New(functions.BothAreZero)
	defer c.Release()

	var info *errdetails.ErrorInfo
	for _, d := range wire.ToStatus(c).Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			info = ei
		}
	}

	require.NotNil(t, info)
	assert.Equal(t, "bothAreZero", info.GetReason())
	assert.Equal(t, string(functions.DivByZeroDomain), info.GetDomain())
	assert.Equal(t, "both dividend and divisor are zero", info.GetMetadata()["message"])
}

func TestInterceptorsSuccess(t *testing.T) {
	reply, err := roundTrip(t, divideRequest{A: 9, B: 2})
	require.NoError(t, err)
	assert.Equal(t, float32(4), reply)
}

func TestInterceptorsFailure(t *testing.T) {
	for _, tt := range []struct {
		req  divideRequest
		want functions.DivByZero
	}{
		{divideRequest{A: 1, B: 0}, functions.DivisorIsZero},
		{divideRequest{A: 0, B: 0}, functions.BothAreZero},
	} {
		_, err := roundTrip(t, tt.req)
		require.Error(t, err)

		var c *carrier.Carrier
		require.True(t, errors.As(err, &c), "got %T", err)

		got, ok := carrier.As[functions.DivByZero](c)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
		c.Release()
	}
}

func TestServerInterceptorPassesForeignErrors(t *testing.T) {
	foreign := fmt.Errorf("database offline")
	server := wire.UnaryServerInterceptor()

	_, err := server(context.Background(), nil, &grpc.UnaryServerInfo{},
		func(context.Context, any) (any, error) { return nil, foreign })

	assert.Same(t, foreign, err)
}

func TestClientInterceptorPassesUndecodableErrors(t *testing.T) {
	plain := status.Error(codes.Unavailable, "try later")
	client := wire.UnaryClientInterceptor()

	err := client(context.Background(), "/x", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return plain })

	assert.Equal(t, plain, err)
}

func TestFromStatusFailures(t *testing.T) {
	_, err := wire.FromStatus(status.New(codes.Internal, "no details"))
	assert.True(t, errors.HasCode(err, errors.ErrMissingErrorInfo))

	_, err = wire.FromStatus(status.New(codes.OK, ""))
	assert.True(t, errors.HasCode(err, errors.ErrMissingErrorInfo))

	unknown, err := status.New(wire.Code, "x").WithDetails(&errdetails.ErrorInfo{
		Reason: "whatever",
		Domain: "test.Unregistered",
	})
	require.NoError(t, err)
	_, err = wire.FromStatus(unknown)
	assert.True(t, errors.HasCode(err, errors.ErrUnknownDomain))

	badCase, err := status.New(wire.Code, "x").WithDetails(&errdetails.ErrorInfo{
		Reason: "divisorIsOne",
		Domain: string(functions.DivByZeroDomain),
	})
	require.NoError(t, err)
	_, err = wire.FromStatus(badCase)
	assert.True(t, errors.HasCode(err, errors.ErrUnknownCase))

	_, err = wire.FromError(fmt.Errorf("not a status"))
	assert.True(t, errors.HasCode(err, errors.ErrMissingErrorInfo))
}

func TestUnpack(t *testing.T) {
	v, err := wire.Unpack(result.Value(3))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	c := carrier.New(functions.DivisorIsZero)
	defer c.Release()
	_, err = wire.Unpack(result.Error[int](c))
	assert.Same(t, c, err)
}
