package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinexa/backoffice/internal/config"
	"github.com/clinexa/backoffice/internal/domain/billing"
	"github.com/clinexa/backoffice/internal/domain/care"
	"github.com/clinexa/backoffice/internal/domain/dashboard"
	"github.com/clinexa/backoffice/internal/domain/hospitalization"
	"github.com/clinexa/backoffice/internal/domain/insurance"
	"github.com/clinexa/backoffice/internal/domain/medication"
	"github.com/clinexa/backoffice/internal/domain/patient"
	"github.com/clinexa/backoffice/internal/domain/practitioner"
	"github.com/clinexa/backoffice/internal/domain/scheduling"
	"github.com/clinexa/backoffice/internal/domain/ward"
	"github.com/clinexa/backoffice/internal/platform/auth"
	"github.com/clinexa/backoffice/internal/platform/backend"
	"github.com/clinexa/backoffice/internal/platform/db"
	"github.com/clinexa/backoffice/internal/platform/export"
	"github.com/clinexa/backoffice/internal/platform/journal"
	"github.com/clinexa/backoffice/internal/platform/middleware"
	"github.com/clinexa/backoffice/internal/platform/prefs"
	"github.com/clinexa/backoffice/internal/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backoffice-server",
		Short: "Hospital back-office API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the back-office API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a collection to an xlsx workbook",
	}

	invoicesCmd := &cobra.Command{
		Use:   "invoices",
		Short: "Export the invoice collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return runExport(out, "invoices")
		},
	}
	invoicesCmd.Flags().String("out", "", "Output path (default invoices-<date>.xlsx)")
	cmd.AddCommand(invoicesCmd)

	patientsCmd := &cobra.Command{
		Use:   "patients",
		Short: "Export the patient registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return runExport(out, "patients")
		},
	}
	patientsCmd.Flags().String("out", "", "Output path (default patients-<date>.xlsx)")
	cmd.AddCommand(patientsCmd)

	return cmd
}

// runExport hydrates an in-memory snapshot from the record service and
// writes one workbook, without starting the HTTP server.
func runExport(out, what string) error {
	logger := newLogger()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st := store.New()
	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendAPIKey,
		time.Duration(cfg.BackendTimeout)*time.Second)
	loader := backend.NewLoader(client, st, nil, logger)
	loader.Hydrate(context.Background())

	snap := st.Snapshot()
	var data []byte
	switch what {
	case "invoices":
		data, err = export.Invoices(snap.Invoices)
	case "patients":
		data, err = export.Patients(snap.Patients)
	default:
		return fmt.Errorf("unknown export target: %s", what)
	}
	if err != nil {
		return err
	}
	if out == "" {
		out = export.Filename(what, time.Now())
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	logger.Info().Str("path", out).Msg("workbook written")
	return nil
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// Domain store
	st := store.New()

	// Command journal, optional: skipped when no database is configured.
	var journalPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		jrnl := journal.New(pool, logger)
		if err := jrnl.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare command journal")
		}
		st.Subscribe(jrnl.Observer())
		logger.Info().Msg("command journal enabled")
		journalPool = pool
	}

	// Preference store, Redis when configured.
	var prefStore prefs.Store = prefs.NewMemory()
	if cfg.RedisURL != "" {
		prefStore, err = prefs.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
	}

	// Hydrate the snapshot from the record service.
	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendAPIKey,
		time.Duration(cfg.BackendTimeout)*time.Second)
	loader := backend.NewLoader(client, st, dashboard.Compute, logger)
	loader.Hydrate(ctx)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(cfg.JWTSecret))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if journalPool != nil {
		e.GET("/health/db", db.HealthHandler(journalPool))
	}

	apiV1 := e.Group("/api/v1")

	// Domain services
	wardSvc := ward.NewService(st)

	patient.NewHandler(patient.NewService(st)).RegisterRoutes(apiV1)
	practitioner.NewHandler(practitioner.NewService(st)).RegisterRoutes(apiV1)
	scheduling.NewHandler(scheduling.NewService(st)).RegisterRoutes(apiV1)
	medication.NewHandler(medication.NewService(st)).RegisterRoutes(apiV1)
	care.NewHandler(care.NewService(st)).RegisterRoutes(apiV1)
	billing.NewHandler(billing.NewService(st)).RegisterRoutes(apiV1)
	ward.NewHandler(wardSvc).RegisterRoutes(apiV1)
	hospitalization.NewHandler(hospitalization.NewService(st, wardSvc)).RegisterRoutes(apiV1)
	insurance.NewHandler(insurance.NewService(st)).RegisterRoutes(apiV1)
	dashboard.NewHandler(dashboard.NewService(st, prefStore)).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
