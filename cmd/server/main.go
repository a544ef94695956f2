package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/utecoffee/warehouse-gateway/internal/app/gateway"
	"github.com/utecoffee/warehouse-gateway/internal/backend"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/metrics"
)

func main() {
	cfg := loadConfig()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.LogLevel.zeroLog())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := godotenv.Overload(".env")
	if err != nil {
		log.Debug().Err(err).Msg("failed to load .env file, using environment variables")
	}

	// One consolidated backend address. The env var wins over the config
	// file so deployments point the gateway without editing yaml.
	if v := os.Getenv("BACKEND_API_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	client, err := backend.NewClient(cfg.Backend)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create backend client")
	}

	m := metrics.New(metrics.Config{})

	router := gateway.NewRouter(gateway.Config{
		Cookies:     cfg.Cookies,
		Gate:        cfg.Gate,
		StaticDir:   cfg.StaticDir,
		MaxBodySize: cfg.MaxBodySize,
	}, client, m)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Msg(fmt.Sprintf("starting server on :%s", cfg.Port))
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}
