package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/americana/pkg/api"
	"github.com/hazyhaar/americana/pkg/importer"
	"github.com/hazyhaar/americana/pkg/store"
	"gopkg.in/yaml.v3"
)

type serveConfig struct {
	Addr          string `yaml:"addr"`
	DataDir       string `yaml:"data_dir"`
	CheckInterval string `yaml:"check_interval"`
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := loadServeConfig(*cfgPath, logger)

	s, err := store.Open(cfg.DataDir)
	if err != nil {
		logger.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}
	logger.Info("datasets loaded", "years", len(s.Years()), "name_years", len(s.Names()))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(s, logger),
	}

	// SIGHUP: hot reload datasets.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading datasets")
			if err := s.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("datasets reloaded", "years", len(s.Years()), "name_years", len(s.Names()))
			}
		}
	}()

	// Periodic availability checks of the upstream sources.
	interval := 6 * time.Hour
	if cfg.CheckInterval != "" {
		d, err := time.ParseDuration(cfg.CheckInterval)
		if err != nil {
			logger.Error("invalid check_interval", "value", cfg.CheckInterval, "error", err)
			os.Exit(1)
		}
		interval = d
	}
	sdb, err := openSources(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open source db", "error", err)
		os.Exit(1)
	}
	defer sdb.Close()
	go importer.NewChecker(sdb, logger, interval).Start(ctx)

	go func() {
		logger.Info("americana listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func loadServeConfig(path string, logger *slog.Logger) serveConfig {
	cfg := serveConfig{
		Addr:    ":8430",
		DataDir: defaultDataDir,
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
