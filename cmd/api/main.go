package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"dealerhub/internal/adapters/dealerbackend"
	server "dealerhub/internal/adapters/http_server"
	"dealerhub/internal/adapters/inventory"
	"dealerhub/internal/adapters/observability"
	redisad "dealerhub/internal/adapters/redis"
	"dealerhub/internal/adapters/sentiment"
	"dealerhub/internal/app"
	"dealerhub/internal/shared"
	mysqlrepo "dealerhub/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	if err := mysqlrepo.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	log.Info().Msg("database ready")

	// deps
	repo := mysqlrepo.New(db)
	sessions := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionTTL)
	backend := dealerbackend.New(cfg.BackendURL, cfg.Timeout)
	analyzer := sentiment.New(cfg.AnalyzerURL, cfg.Timeout, 20)
	search := inventory.New(cfg.SearchURL, cfg.Timeout)

	handlers := &server.Handlers{
		Dealers:   app.NewDealerService(backend, analyzer, cfg.Enrichers),
		Catalog:   app.NewCatalogService(repo),
		Inventory: app.NewInventoryService(search),
		Auth:      app.NewAuthService(repo, sessions),
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.BackendURL).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
