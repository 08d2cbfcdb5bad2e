package wire

import (
	"context"

	"codeberg.org/mutker/errbridge/internal/carrier"
	"codeberg.org/mutker/errbridge/internal/errors"
	"google.golang.org/grpc"
)

// UnaryServerInterceptor encodes carriers returned by handlers as gRPC
// statuses and releases them. Other errors pass through unchanged.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var c *carrier.Carrier
		if !errors.As(err, &c) {
			return nil, err
		}

		st := ToStatus(c)
		c.Release()

		return nil, st.Err()
	}
}

// UnaryClientInterceptor turns statuses produced by UnaryServerInterceptor
// back into carriers. Errors that do not decode pass through unchanged.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context, method string, req, reply any,
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption,
	) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}

		c, decodeErr := FromError(err)
		if decodeErr != nil {
			return err
		}

		return c
	}
}
