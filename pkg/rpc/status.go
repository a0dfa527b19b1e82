package rpc

import (
	"context"
	"errors"

	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToStatus converts an application error into a gRPC status error.
// Unclassified errors become a bare Internal status so infrastructure
// details never reach the caller.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, "request canceled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	msg := err.Error()
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case apperr.KindBusinessRule:
		return status.Error(codes.FailedPrecondition, msg)
	case apperr.KindInvalid:
		return status.Error(codes.InvalidArgument, msg)
	case apperr.KindForbidden:
		return status.Error(codes.PermissionDenied, msg)
	case apperr.KindUnauthenticated:
		return status.Error(codes.Unauthenticated, msg)
	case apperr.KindConflict:
		return status.Error(codes.Aborted, msg)
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
