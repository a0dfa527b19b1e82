package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// httpStatusFromGRPC maps a gRPC error to an HTTP status, a stable error
// code and a message safe to show.
func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.FailedPrecondition:
		return http.StatusBadRequest, "FAILED_PRECONDITION", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.PermissionDenied:
		return http.StatusForbidden, "PERMISSION_DENIED", st.Message()
	case codes.Unauthenticated:
		return http.StatusUnauthorized, "UNAUTHENTICATED", st.Message()
	case codes.Aborted, codes.AlreadyExists:
		return http.StatusConflict, "CONFLICT", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", "service unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

// writeError answers with the mapped status. The application error code
// from the call trailer, when present, replaces the generic one.
func writeError(w http.ResponseWriter, log *slog.Logger, err error, trailer metadata.MD) {
	code, errCode, msg := httpStatusFromGRPC(err)
	if v := trailer.Get(rpc.ErrorCodeTrailer); len(v) > 0 && code < http.StatusInternalServerError {
		errCode = v[0]
	}
	if code >= http.StatusInternalServerError {
		log.Error("upstream call failed", slog.Any("err", err))
	}
	writeJSON(w, code, errorBody{Code: errCode, Message: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
