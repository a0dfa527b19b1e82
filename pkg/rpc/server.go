package rpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const RequestIDHeader = "x-request-id"

// ErrorCodeTrailer carries the application error code (e.g. EMPTY_CART) of
// a rejected call.
const ErrorCodeTrailer = "x-error-code"

// LoggingInterceptor attaches a request-scoped logger to the context, maps
// handler errors to gRPC statuses and logs one line per call.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		reqID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(RequestIDHeader); len(v) > 0 {
				reqID = v[0]
			}
		}
		if reqID == "" {
			reqID = uuid.NewString()
		}

		reqLog := log.With(slog.String("method", info.FullMethod), slog.String("request_id", reqID))
		ctx = logger.WithContext(ctx, reqLog)

		resp, err := handler(ctx, req)
		if err != nil {
			mapped := ToStatus(err)
			st, _ := status.FromError(mapped)
			attrs := []any{slog.String("code", st.Code().String()), slog.Duration("took", time.Since(start))}
			if st.Code() == codes.Internal {
				reqLog.Error("rpc failed", append(attrs, slog.Any("err", err))...)
			} else {
				reqLog.Info("rpc rejected", append(attrs, slog.String("reason", st.Message()))...)
				if code := apperr.CodeOf(err); code != "" {
					_ = grpc.SetTrailer(ctx, metadata.Pairs(ErrorCodeTrailer, code))
				}
			}
			return nil, mapped
		}

		reqLog.Debug("rpc ok", slog.Duration("took", time.Since(start)))
		return resp, nil
	}
}

// NewServer builds a gRPC server running the given interceptors in order.
func NewServer(interceptors ...grpc.UnaryServerInterceptor) *grpc.Server {
	return grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
}

// Dial opens a plaintext client connection that speaks the JSON codec.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)
	return grpc.NewClient(addr, opts...)
}
