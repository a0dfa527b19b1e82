package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dwikikusuma/shop-backoffice/internal/assistant"
	catalogapp "github.com/dwikikusuma/shop-backoffice/internal/catalog/app"
	catalogsqlite "github.com/dwikikusuma/shop-backoffice/internal/catalog/infra/sqlite"
	userapp "github.com/dwikikusuma/shop-backoffice/internal/user/app"
	usersqlite "github.com/dwikikusuma/shop-backoffice/internal/user/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/pkg/config"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
)

func main() {
	cfg := config.Load()
	// stdout belongs to the MCP transport
	log := logger.New(logger.Options{Service: "assistant", Env: cfg.AppEnv, Level: cfg.LogLevel, Output: os.Stderr})

	db, err := database.Open(context.Background(), cfg.DBPath)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err), slog.String("path", cfg.DBPath))
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database ready", slog.String("path", cfg.DBPath), slog.String("build", database.BuildMode))

	catalog := catalogapp.NewService(catalogsqlite.NewProductRepo(db), userapp.NewResolver(usersqlite.NewUserRepo(db)))

	if err := assistant.NewServer(catalog, log).Serve(); err != nil {
		log.Error("assistant stopped", slog.Any("err", err))
		os.Exit(1)
	}
}
