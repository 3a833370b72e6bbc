package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgram/config"
	dbpkg "foodgram/db"
	"foodgram/logging"
	"foodgram/router"

	"github.com/gin-gonic/gin"
)

// =====================
// Configuração
// =====================
//
// config.yaml (ou -config / FOODGRAM_CONFIG) + variáveis FOODGRAM_*:
// - FOODGRAM_API_PORT                 (ex: 8080)
// - FOODGRAM_DATABASE                 (sqlite3 | postgres)
// - FOODGRAM_DB_PATH / FOODGRAM_DB_HOST / FOODGRAM_DB_USER ...
// - FOODGRAM_SECURITY__JWT_SECRET     (obrigatório em produção)
// - FOODGRAM_RECIPES__MAX_COOKING_TIME (0 desliga o limite)
//
// -load-ingredients <arquivo.json> carrega os ingredientes e sai.
// =====================

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	ingredientsPath := flag.String("load-ingredients", "", "load ingredients from a JSON file and exit")
	flag.Parse()

	cfg, err := config.Get(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	database, err := dbpkg.Connect(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("database", cfg.Database).Msg("failed to connect to database")
	}
	defer database.Close()

	if *ingredientsPath != "" {
		n, err := dbpkg.LoadIngredientsFile(database, *ingredientsPath)
		if err != nil {
			logging.Fatal().Err(err).Str("file", *ingredientsPath).Msg("failed to load ingredients")
		}
		logging.Info().Int("created", n).Str("file", *ingredientsPath).Msg("ingredients loaded")
		return
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	router.Initialize(r, cfg, database)

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("port", cfg.ApiPort).Str("environment", cfg.Environment).Msg("foodgram listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
