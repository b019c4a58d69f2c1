package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/opencoc/pitpipe/pkg/api"
	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/region"
	"github.com/opencoc/pitpipe/pkg/runstore"
)

type config struct {
	Addr       string       `yaml:"addr"`
	RegionsDir string       `yaml:"regions_dir"`
	RunsDB     string       `yaml:"runs_db"`
	Workers    int          `yaml:"workers"`
	Format     frame.Format `yaml:"format"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "process":
		cmdProcess(os.Args[2:])
	case "detect":
		cmdDetect(os.Args[2:])
	case "report":
		cmdReport(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	case "runs":
		cmdRuns(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: pitpipe <command>

Commands:
  serve     Start the HTTP server
  mcp       Serve the MCP tools over stdio
  process   Normalize, flatten and deduplicate one survey file
  detect    Detect the region of a survey file header
  report    Build the report tables from processed person files
  validate  Check person-level values against the valid-value lists
  runs      List recorded processing runs
`)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:   ":8430",
		RunsDB: "runs.db",
		Format: frame.DefaultFormat,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}

func loadRegions(cfg config, logger *slog.Logger) *region.Registry {
	reg := region.NewRegistry(cfg.RegionsDir)
	if err := reg.Load(); err != nil {
		logger.Error("failed to load region definitions", "error", err)
		os.Exit(1)
	}
	logger.Info("regions loaded", "count", len(reg.Regions()))
	return reg
}

func openRuns(cfg config, logger *slog.Logger) *runstore.Store {
	store, err := runstore.Open(cfg.RunsDB)
	if err != nil {
		logger.Error("failed to open run store", "path", cfg.RunsDB, "error", err)
		os.Exit(1)
	}
	return store
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	reg := loadRegions(cfg, logger)
	store := openRuns(cfg, logger)
	defer store.Close()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(reg, store),
	}

	// SIGHUP: hot reload region definitions.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading regions")
			if err := reg.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("regions reloaded", "count", len(reg.Regions()))
			}
		}
	}()

	go func() {
		logger.Info("pitpipe listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	reg := loadRegions(cfg, logger)
	store := openRuns(cfg, logger)
	defer store.Close()

	srv := server.NewMCPServer("pitpipe", version)
	api.RegisterMCPTools(srv, reg, store)

	logger.Info("serving MCP tools over stdio")
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

const version = "0.3.0"
