package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	cartv1 "github.com/dwikikusuma/shop-backoffice/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/shop-backoffice/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/shop-backoffice/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/shop-backoffice/api/order/v1"
	userv1 "github.com/dwikikusuma/shop-backoffice/api/user/v1"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"

	userapp "github.com/dwikikusuma/shop-backoffice/internal/user/app"
	usergrpc "github.com/dwikikusuma/shop-backoffice/internal/user/grpc"
	"github.com/dwikikusuma/shop-backoffice/internal/user/infra/password"
	usersqlite "github.com/dwikikusuma/shop-backoffice/internal/user/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/internal/user/infra/token"

	catalogapp "github.com/dwikikusuma/shop-backoffice/internal/catalog/app"
	cgrpc "github.com/dwikikusuma/shop-backoffice/internal/catalog/grpc"
	catalogsqlite "github.com/dwikikusuma/shop-backoffice/internal/catalog/infra/sqlite"

	cartapp "github.com/dwikikusuma/shop-backoffice/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/shop-backoffice/internal/cart/grpc"
	cartadapter "github.com/dwikikusuma/shop-backoffice/internal/cart/infra/adapter"
	cartsqlite "github.com/dwikikusuma/shop-backoffice/internal/cart/infra/sqlite"

	checkoutapp "github.com/dwikikusuma/shop-backoffice/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/shop-backoffice/internal/checkout/grpc"
	checkoutadapter "github.com/dwikikusuma/shop-backoffice/internal/checkout/infra/adapter"
	checkoutsqlite "github.com/dwikikusuma/shop-backoffice/internal/checkout/infra/sqlite"

	orderapp "github.com/dwikikusuma/shop-backoffice/internal/order/app"
	ordergrpc "github.com/dwikikusuma/shop-backoffice/internal/order/grpc"
	ordersqlite "github.com/dwikikusuma/shop-backoffice/internal/order/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/internal/order/outbox"

	"github.com/dwikikusuma/shop-backoffice/pkg/broker/rabbitmq"
	"github.com/dwikikusuma/shop-backoffice/pkg/cache"
	"github.com/dwikikusuma/shop-backoffice/pkg/config"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/dwikikusuma/shop-backoffice/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(ctx, log, cfg.DBPath)
	defer db.Close()

	productCache, closeCache, err := cache.New(ctx, cache.Options{
		Backend:   cfg.CacheBackend,
		Size:      cfg.CacheSize,
		TTL:       cfg.CacheTTL,
		RedisAddr: cfg.RedisAddr,
	})
	if err != nil {
		log.Error("cache setup failed", slog.Any("err", err), slog.String("backend", cfg.CacheBackend))
		os.Exit(1)
	}
	defer closeCache()

	// User
	userRepo := usersqlite.NewUserRepo(db)
	userSvc := userapp.NewService(userRepo, password.NewBcrypt(0), token.NewJWT(cfg.JWTSecret, cfg.JWTTTL))
	resolver := userapp.NewResolver(userRepo)
	if _, err := userSvc.EnsureAdmin(ctx, log, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("admin bootstrap failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Catalog
	catalogSvc := catalogapp.NewService(catalogsqlite.NewProductRepo(db), resolver,
		catalogapp.WithCache(productCache, cfg.CacheTTL),
		catalogapp.WithProductLimit(cfg.ProductLimit),
	)

	// Cart
	cartSvc := cartapp.NewService(cartsqlite.NewCartRepo(db), cartadapter.NewCatalogServiceReader(catalogSvc), resolver)

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(checkoutsqlite.NewUnitOfWork(db), resolver, cartReader, catalogReader, catalogSvc)

	// Orders
	orderSvc := orderapp.NewService(ordersqlite.NewOrderRepo(db), resolver)

	relay, closeBroker := mustRelay(ctx, log, cfg, db)
	defer closeBroker()

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", addr))
		os.Exit(1)
	}

	grpcServer := rpc.NewServer(
		rpc.LoggingInterceptor(log),
		auth.UnaryServerInterceptor(userSvc, policy()),
	)
	userv1.RegisterUserServiceServer(grpcServer, usergrpc.NewServer(userSvc))
	catalogv1.RegisterCatalogServiceServer(grpcServer, cgrpc.NewServer(catalogSvc))
	cartv1.RegisterCartServiceServer(grpcServer, cartgrpc.NewServer(cartSvc))
	checkoutv1.RegisterCheckoutServiceServer(grpcServer, checkoutgrpc.NewServer(checkoutSvc))
	orderv1.RegisterOrderServiceServer(grpcServer, ordergrpc.NewServer(orderSvc))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", addr))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		return relay.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		if shutdown.Graceful(10*time.Second, grpcServer.GracefulStop, grpcServer.Stop) {
			log.Warn("graceful stop timeout, forcing stop")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("api stopped with error", slog.Any("err", err))
	}
	log.Info("bye")
}

func mustDB(ctx context.Context, log *slog.Logger, path string) *sql.DB {
	db, err := database.Open(ctx, path)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err), slog.String("path", path))
		os.Exit(1)
	}
	log.Info("database ready", slog.String("path", path), slog.String("driver", database.DriverName), slog.String("build", database.BuildMode))
	return db
}

// mustRelay wires the order event relay to RabbitMQ, or to the log when no
// broker URL is configured.
func mustRelay(ctx context.Context, log *slog.Logger, cfg config.Config, db *sql.DB) (*outbox.Relay, func()) {
	store := outbox.NewStore(db)
	if cfg.AMQPURL == "" {
		log.Info("no AMQP_URL, order events go to the log")
		return outbox.NewRelay(store, outbox.LogPublisher{Log: log}, log, cfg.OutboxInterval, cfg.OutboxBatch), func() {}
	}

	conn, ch, err := rabbitmq.SetupConn(ctx, cfg.AMQPURL, 5, log)
	if err != nil {
		log.Error("broker setup failed", slog.Any("err", err))
		os.Exit(1)
	}

	pub := rabbitmq.NewPublisher(conn, ch, cfg.AMQPURL, log)
	return outbox.NewRelay(store, pub, log, cfg.OutboxInterval, cfg.OutboxBatch), pub.Close
}
