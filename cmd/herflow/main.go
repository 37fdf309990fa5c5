package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/terraincognita07/herflow/internal/api"
	"github.com/terraincognita07/herflow/internal/cli"
	"github.com/terraincognita07/herflow/internal/config"
	"github.com/terraincognita07/herflow/internal/db"
	"github.com/terraincognita07/herflow/internal/logger"
	"github.com/terraincognita07/herflow/internal/metrics"
	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

const usage = `Usage: herflow [command]

Commands:
  serve                 run the local HTTP server (default)
  backup [path]         write a backup document (stdout when no path)
  restore [--yes] PATH  apply a backup document
  clear-data [--yes]    delete every tracked value
  status                print today's cycle status
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "herflow: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout io.Writer, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.SetupDefault(stderr, cfg.Log.Level)
	location := cfg.Location()

	env := cli.Env{
		DBPath:   cfg.Storage.DBPath,
		Theme:    cfg.Theme(),
		Location: location,
		Logger:   log,
		Stdout:   stdout,
	}

	command, rest := splitCommand(args)
	assumeYes, rest := extractYesFlag(rest)
	confirm := cli.TerminalConfirmer(stdin, stdout)
	if assumeYes {
		confirm = cli.AssumeYes
	}

	switch command {
	case "serve":
		return serve(cfg, log)
	case "backup":
		return cli.RunBackupCommand(env, firstArg(rest))
	case "restore":
		return cli.RunRestoreCommand(env, firstArg(rest), confirm)
	case "clear-data":
		return cli.RunClearDataCommand(env, confirm)
	case "status":
		return cli.RunStatusCommand(env)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func serve(cfg *config.Config, log *slog.Logger) error {
	database, err := db.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	store := services.NewDomainStore(db.NewStateRepository(database), log, models.Settings{Theme: cfg.Theme()})
	if err := store.Load(); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("close state store failed", "error", err)
		}
	}()

	app := newApp(cfg)
	handler := api.NewHandler(store, cfg.Location(), log)
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector := metrics.NewCollector(registry)
		collector.ObserveStore(func() (int, int) {
			return len(store.Periods()), len(store.DailyLogs())
		})
		app.Use(collector.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(registry)))
		handler.WithMetrics(collector)
	}
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("herflow listening",
		"addr", cfg.Addr(),
		"db", cfg.Storage.DBPath,
		"tz", cfg.Location().String(),
	)
	if err := app.Listen(cfg.Addr()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Herflow",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimitBytes,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	return app
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "serve", nil
	}
	return args[0], args[1:]
}

func extractYesFlag(args []string) (bool, []string) {
	rest := make([]string, 0, len(args))
	yes := false
	for _, arg := range args {
		if arg == "--yes" || arg == "-y" {
			yes = true
			continue
		}
		rest = append(rest, arg)
	}
	return yes, rest
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
