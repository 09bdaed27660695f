//	@title			Workforce Management API
//	@version		1.0
//	@description	Task lifecycle and reassignment for operations staff.
//	@BasePath		/api/v1

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/workforcemgmt/internal/catalog"
	"github.com/mtlprog/workforcemgmt/internal/config"
	"github.com/mtlprog/workforcemgmt/internal/database"
	"github.com/mtlprog/workforcemgmt/internal/handler"
	"github.com/mtlprog/workforcemgmt/internal/logger"
	"github.com/mtlprog/workforcemgmt/internal/metrics"
	"github.com/mtlprog/workforcemgmt/internal/middleware"
	"github.com/mtlprog/workforcemgmt/internal/repository"
	"github.com/mtlprog/workforcemgmt/internal/repository/memory"
	"github.com/mtlprog/workforcemgmt/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "workforcemgmt",
		Usage: "Task lifecycle and reassignment service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   config.DefaultLogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "storage",
				Aliases: []string{"s"},
				Value:   config.DefaultStorage,
				Usage:   "Task storage backend (memory, postgres)",
				EnvVars: []string{"STORAGE"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.IntFlag{
				Name:    "max-conns",
				Value:   config.DefaultMaxConns,
				Usage:   "Maximum PostgreSQL pool connections",
				EnvVars: []string{"DATABASE_MAX_CONNS"},
			},
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Value:   config.DefaultCatalogFile,
				Usage:   "YAML file mapping reference types to task kinds (built-in catalog if empty)",
				EnvVars: []string{"CATALOG_FILE"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:  "migrate",
				Usage: "Apply PostgreSQL schema migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "down",
						Usage: "Roll back the latest migration instead",
					},
				},
				Action: runMigrate,
			},
			{
				Name:   "catalog",
				Usage:  "Print the effective task catalog as YAML",
				Action: runCatalog,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// store is what the server needs from a storage backend.
type store interface {
	service.TaskStore
	handler.Pinger
}

func loadCatalog(c *cli.Context) (*catalog.Catalog, error) {
	path := c.String("catalog")
	if path == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("catalog loaded", "path", path, "reference_types", len(cat.ReferenceTypes()))
	return cat, nil
}

func connect(c *cli.Context) (*database.DB, error) {
	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return nil, errors.New("database URL is required for postgres storage")
	}

	db, err := database.New(c.Context, databaseURL, int32(c.Int("max-conns")))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// openStore returns the selected backend and a function releasing it.
func openStore(c *cli.Context) (store, func(), error) {
	switch backend := c.String("storage"); backend {
	case config.StorageMemory:
		slog.Info("using in-memory storage")
		return memory.New(), func() {}, nil
	case config.StoragePostgres:
		db, err := connect(c)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(c.Context, db.Pool()); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return repository.NewTaskRepository(db.Pool()), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	cat, err := loadCatalog(c)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	taskService := service.NewTaskService(st, cat, metrics.New(registry), time.Now)
	h := handler.New(taskService, cat, st, registry)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           middleware.Logging(middleware.Recover(mux)),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runMigrate(c *cli.Context) error {
	db, err := connect(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if c.Bool("down") {
		return database.RollbackMigration(c.Context, db.Pool())
	}
	return database.RunMigrations(c.Context, db.Pool())
}

func runCatalog(c *cli.Context) error {
	cat, err := loadCatalog(c)
	if err != nil {
		return err
	}

	out, err := cat.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render catalog: %w", err)
	}

	_, err = c.App.Writer.Write(out)
	return err
}
