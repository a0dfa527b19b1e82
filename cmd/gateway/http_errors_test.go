package main

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHTTPStatusFromGRPC(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"InvalidArgument -> 400", status.Error(codes.InvalidArgument, "bad"), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"FailedPrecondition -> 400", status.Error(codes.FailedPrecondition, "cart is empty"), http.StatusBadRequest, "FAILED_PRECONDITION"},
		{"NotFound -> 404", status.Error(codes.NotFound, "missing"), http.StatusNotFound, "NOT_FOUND"},
		{"PermissionDenied -> 403", status.Error(codes.PermissionDenied, "nope"), http.StatusForbidden, "PERMISSION_DENIED"},
		{"Unauthenticated -> 401", status.Error(codes.Unauthenticated, "who"), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"Aborted -> 409", status.Error(codes.Aborted, "stock changed"), http.StatusConflict, "CONFLICT"},
		{"Unavailable -> 503", status.Error(codes.Unavailable, "down"), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"DeadlineExceeded -> 503", status.Error(codes.DeadlineExceeded, "timeout"), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"Internal -> 500", status.Error(codes.Internal, "internal error"), http.StatusInternalServerError, "INTERNAL"},
		{"non-grpc error -> 500", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, gotCode, _ := httpStatusFromGRPC(tc.err)
			if gotStatus != tc.wantStatus || gotCode != tc.wantCode {
				t.Fatalf("got (%d,%s)", gotStatus, gotCode)
			}
		})
	}
}
