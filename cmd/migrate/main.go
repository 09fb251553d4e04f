// Command migrate applies (or drops, with -drop) the reviews schema.
package main

import (
	"context"
	"database/sql"
	"flag"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"staff_reviews/internal/adapters/observability"
	"staff_reviews/internal/shared"
	mysqlstore "staff_reviews/internal/storage/mysql"
)

func main() {
	drop := flag.Bool("drop", false, "drop the reviews table instead of creating the schema")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	store := mysqlstore.New(db)
	ctx := context.Background()

	if *drop {
		if err := store.DropSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("drop schema failed")
		}
		log.Info().Msg("reviews table dropped")
		return
	}
	if err := store.CreateSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("create schema failed")
	}
	log.Info().Msg("schema ready")
}
