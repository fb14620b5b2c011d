package main

import (
	"os"
	"time"

	"geofoundry/internal/api"
	"geofoundry/internal/config"
	"geofoundry/internal/foundry"
)

func main() {
	cfg, err := config.Load(os.Getenv("GEOFOUNDRY_CONFIG"))
	if err != nil {
		bootLog := config.NewLogger(config.LoggingConfig{Level: "info", Format: "console"}, os.Stderr)
		bootLog.Fatal().Err(err).Msg("configuration")
	}
	log := config.NewLogger(cfg.Logging, os.Stderr)

	// 1. Initialize Echo (Starts Instantly)
	var metrics *api.Metrics
	if cfg.Metrics.Enabled {
		metrics = api.NewMetrics("")
	}
	e := api.NewEcho(log, metrics, cfg.Metrics.Path)

	// 2. Handler without a foundry answers 503 until the load completes
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	// 3. Load the foundry in the background
	go func() {
		t0 := time.Now()
		f, err := foundry.Load(cfg.Fold, foundry.WithLogger(log))
		if err != nil {
			log.Fatal().Err(err).Str("fold", cfg.Fold).Msg("foundry load failed")
		}
		if metrics != nil {
			metrics.ObserveLoad(f, time.Since(t0))
		}
		h.SetFoundry(f)
		log.Info().Dur("elapsed", time.Since(t0)).Msg("foundry ready")
	}()

	// 4. Start Server
	log.Info().Str("addr", cfg.Server.Addr()).Msg("server ready (foundry loading in background)")
	if err := e.Start(cfg.Server.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
