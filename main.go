package main

import (
	"os"

	"github.com/valyala/fasthttp"

	"capital-engine/internal/config"
	"capital-engine/internal/engine"
	"capital-engine/internal/handler"
	"capital-engine/internal/logger"
	"capital-engine/internal/profileregistry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(logger.Config{})
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	profiles := profileregistry.New(cfg.ProfileRegistryURL, log.With().Str("component", "profileregistry").Logger())
	calc := engine.NewCalculator(profiles, engine.Limits{
		MaxTrajectories: cfg.MaxTrajectories,
		MaxHorizonYears: cfg.MaxHorizonYears,
		MaxWorkers:      cfg.Workers,
	}, log.With().Str("component", "engine").Logger())
	h := handler.New(calc, log.With().Str("component", "http").Logger())

	log.Info().
		Str("addr", cfg.Addr()).
		Int("workers", cfg.Workers).
		Bool("remote_profiles", cfg.ProfileRegistryURL != "").
		Msg("Capital engine starting")
	if err := fasthttp.ListenAndServe(cfg.Addr(), h.Handle); err != nil {
		log.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}
