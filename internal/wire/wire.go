// Package wire moves error carriers across a gRPC hop.
//
// A carrier is encoded as a status with a google.rpc.ErrorInfo detail
// whose domain and reason name the error domain and case. The receiving
// side resolves them through the domain registry and rebuilds an
// equivalent carrier, so As recovers the same case on both ends.
package wire

import (
	"codeberg.org/mutker/errbridge/internal/carrier"
	"codeberg.org/mutker/errbridge/internal/domain"
	"codeberg.org/mutker/errbridge/internal/errors"
	"codeberg.org/mutker/errbridge/internal/result"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/anypb"
)

// Code is the gRPC code domain errors travel under.
const Code = codes.FailedPrecondition

const messageKey = "message"

// ToStatus encodes c as a gRPC status. It does not release c.
func ToStatus(c *carrier.Carrier) *status.Status {
	info := &errdetails.ErrorInfo{
		Reason:   c.Case(),
		Domain:   string(c.Domain()),
		Metadata: map[string]string{messageKey: c.Error()},
	}

	detail, err := anypb.New(info)
	if err != nil {
		return status.New(Code, c.Error())
	}

	return status.FromProto(&spb.Status{
		Code:    int32(Code),
		Message: c.Error(),
		Details: []*anypb.Any{detail},
	})
}

// FromStatus rebuilds the carrier encoded in st. It fails when st has no
// ErrorInfo detail or names a domain or case that is not registered.
func FromStatus(st *status.Status) (*carrier.Carrier, error) {
	errFactory := errors.New()

	if st == nil || st.Code() == codes.OK {
		return nil, errFactory.New(errors.ErrMissingErrorInfo)
	}

	for _, detail := range st.Proto().GetDetails() {
		if !detail.MessageIs(&errdetails.ErrorInfo{}) {
			continue
		}

		info := &errdetails.ErrorInfo{}
		if err := detail.UnmarshalTo(info); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidArgument, err)
		}

		v, err := domain.Lookup(domain.ID(info.GetDomain()), info.GetReason())
		if err != nil {
			return nil, err
		}

		return carrier.New(v), nil
	}

	return nil, errFactory.WithData(errors.ErrMissingErrorInfo, st.Message())
}

// FromError rebuilds the carrier encoded in a gRPC error.
func FromError(err error) (*carrier.Carrier, error) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, errors.New().Wrap(errors.ErrMissingErrorInfo, err)
	}

	return FromStatus(st)
}

// Unpack converts a result into the (value, error) pair a gRPC handler
// returns. The error, if any, is the carrier itself.
func Unpack[T any](r result.Of[T]) (T, error) {
	if r.HasValue() {
		return r.Value(), nil
	}

	var zero T

	return zero, r.Err()
}
