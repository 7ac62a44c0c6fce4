package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"callforecast/internal/api"
	"callforecast/internal/config"
	"callforecast/internal/directory"
	"callforecast/internal/forecast"
	"callforecast/internal/metrics"
	"callforecast/internal/predictor"
	"callforecast/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("loading config")
	}

	logger := newLogger(cfg)

	// Model artifacts gate everything: without them there is no
	// forecasting, trained-state fallbacks do not exist.
	schema, model, err := predictor.LoadArtifacts(cfg.ModelPath, cfg.ColumnsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading model artifacts")
	}
	logger.Info().
		Int("features", schema.Len()).
		Strs("categories", model.Categories()).
		Msg("model artifacts loaded")

	dir, err := loadDirectory(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading hospital directory")
	}
	logger.Info().Int("units", dir.Len()).Msg("hospital directory loaded")

	svc := forecast.NewService(schema, model, dir, logger)

	hub := ws.NewHub(logger)
	wsHandler := ws.NewHandler(hub, svc, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	api.New(svc, logger).Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	e.GET("/ws", echo.WrapHandler(wsHandler))

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("server listening")
		if err := e.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func loadDirectory(ctx context.Context, cfg *config.Config) (*directory.Directory, error) {
	if cfg.DirectoryDSN != "" {
		return directory.LoadPostgres(ctx, cfg.DirectoryDSN)
	}
	return directory.LoadCSVFile(cfg.DirectoryPath)
}
