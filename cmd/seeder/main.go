package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"dealerhub/internal/adapters/observability"
	"dealerhub/internal/app"
	"dealerhub/internal/shared"
	mysqlrepo "dealerhub/internal/storage/mysql"
)

// Seeds the car catalog explicitly. The API also seeds lazily on the
// first catalog read, so this exists for provisioning pipelines that
// want the data in place before traffic arrives.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Msg("seeder starting")

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

	repo := mysqlrepo.New(db)
	if err := app.NewCatalogService(repo).Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("car catalog seeded")
}
