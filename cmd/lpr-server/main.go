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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tejask-saama/AscensionLPR/internal/config"
	"github.com/tejask-saama/AscensionLPR/internal/domain/assistant"
	"github.com/tejask-saama/AscensionLPR/internal/domain/patient"
	"github.com/tejask-saama/AscensionLPR/internal/domain/realtime"
	"github.com/tejask-saama/AscensionLPR/internal/platform/middleware"
	"github.com/tejask-saama/AscensionLPR/internal/platform/upstream"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lpr-server",
		Short: "Longitudinal Patient Record server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the LPR server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Rate limiting and timeouts on the API surface only; static assets
	// are served without either.
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api := e.Group("/api")
	api.Use(middleware.RateLimit(rateLimitCfg))
	api.Use(middleware.RequestTimeout(cfg.UpstreamTimeout() + 5*time.Second))

	// Upstream relay
	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout(), cfg.UpstreamRetries, logger)
	upstream.NewHandler(client).RegisterRoutes(e)

	// Domain handlers
	seed := patient.NewSeedStore()
	patientSvc := patient.NewService(client, logger)
	patient.NewHandler(patientSvc, seed).RegisterRoutes(e)

	assistantStore := assistant.NewStore()
	assistant.NewHandler(client, assistantStore, logger).RegisterRoutes(e)

	realtime.NewHandler(realtime.NewSimulator(), seed, logger).RegisterRoutes(e)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Static client with SPA-style fallback to index.html
	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Root:   cfg.StaticDir,
		Index:  "index.html",
		HTML5:  true,
		Browse: false,
	}))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("upstream", cfg.UpstreamURL).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
