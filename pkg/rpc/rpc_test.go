package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"not found", apperr.NotFoundf("order %s not found", "1"), codes.NotFound},
		{"business rule", apperr.New(apperr.KindBusinessRule, "EMPTY_CART", "cart is empty"), codes.FailedPrecondition},
		{"invalid", apperr.Invalidf("bad"), codes.InvalidArgument},
		{"forbidden", apperr.Forbiddenf("nope"), codes.PermissionDenied},
		{"unauthenticated", apperr.ErrUnauthenticated, codes.Unauthenticated},
		{"conflict", apperr.ErrConflict, codes.Aborted},
		{"wrapped", fmt.Errorf("ctx: %w", apperr.NotFoundf("x")), codes.NotFound},
		{"canceled", context.Canceled, codes.Canceled},
		{"plain", errors.New("sql: connection refused"), codes.Internal},
		{"already status", status.Error(codes.Unavailable, "down"), codes.Unavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ok := status.FromError(ToStatus(tc.err))
			require.True(t, ok)
			assert.Equal(t, tc.want, st.Code())
		})
	}

	t.Run("internal hides details", func(t *testing.T) {
		st, _ := status.FromError(ToStatus(errors.New("password=hunter2")))
		assert.Equal(t, "internal error", st.Message())
	})

	assert.NoError(t, ToStatus(nil))
}

type echoRequest struct {
	Text string `json:"text"`
}

type echoResponse struct {
	Text string `json:"text"`
}

type echoServer interface {
	Echo(context.Context, *echoRequest) (*echoResponse, error)
}

type echoImpl struct{}

func (echoImpl) Echo(_ context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Text == "" {
		return nil, apperr.Invalidf("text is required")
	}
	return &echoResponse{Text: "echo: " + req.Text}, nil
}

const echoService = "test.EchoService"

var echoDesc = grpc.ServiceDesc{
	ServiceName: echoService,
	HandlerType: (*echoServer)(nil),
	Methods:     []grpc.MethodDesc{Unary(echoService, "Echo", echoServer.Echo)},
}

func TestUnaryRoundTrip(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(LoggingInterceptor(logger.Discard()))
	srv.RegisterService(&echoDesc, echoImpl{})
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()

	out, err := Invoke[echoResponse](ctx, conn, echoService, "Echo", &echoRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", out.Text)

	var trailer metadata.MD
	_, err = Invoke[echoResponse](ctx, conn, echoService, "Echo", &echoRequest{}, grpc.Trailer(&trailer))
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "text is required", st.Message())
	assert.Equal(t, []string{"INVALID_INPUT"}, trailer.Get(ErrorCodeTrailer))
}
