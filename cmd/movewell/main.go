package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/movewell/internal/api"
	"github.com/terraincognita07/movewell/internal/cli"
	"github.com/terraincognita07/movewell/internal/config"
	"github.com/terraincognita07/movewell/internal/db"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "movewell",
		Short:        "Fitness progress tracking API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrations(cmd.OutOrStdout())
			},
		},
		newResetPasswordCommand(),
	)
	return root
}

func newResetPasswordCommand() *cobra.Command {
	var email string
	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Issue a temporary password for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunResetPasswordCommand(storageOptions(config.LoadStorage()), email, cmd.OutOrStdout())
		},
	}
	command.Flags().StringVar(&email, "email", "", "account email address")
	_ = command.MarkFlagRequired("email")
	return command
}

func storageOptions(cfg config.Config) db.Options {
	return db.Options{
		Driver:      cfg.DBDriver,
		SQLitePath:  cfg.DBPath,
		PostgresDSN: cfg.DatabaseURL,
	}
}

func runMigrations(out io.Writer) error {
	cfg := config.LoadStorage()
	database, err := db.Open(storageOptions(cfg))
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	if cfg.DBDriver == db.DriverPostgres {
		fmt.Fprintln(out, "postgres schema synchronized")
		return nil
	}

	versions, err := db.AppliedMigrations(database)
	if err != nil {
		return err
	}
	for _, version := range versions {
		fmt.Fprintf(out, "applied %s\n", version)
	}
	return nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	database, err := db.Open(storageOptions(cfg))
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Printf("database close failed: %v", err)
		}
	}()

	handler, err := api.NewHandler(database, api.Options{
		SecretKey:      cfg.SecretKey,
		TokenTTL:       cfg.TokenTTL,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(cfg, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("movewell listening on http://0.0.0.0:%s (driver: %s)", cfg.Port, cfg.DBDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(cfg config.Config, handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "MoveWell",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	app.Use(compress.New())
	app.Use(api.RequestMetrics)

	api.RegisterMetricsRoute(app, cfg.MetricsUser, cfg.MetricsPass)
	api.RegisterRoutes(app, handler)
	return app
}

func corsConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       600,
	}
}
