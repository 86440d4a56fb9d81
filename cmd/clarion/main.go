// Command clarion is the entry point for the Clarion pronunciation
// assessment server. It can also score a recorded session in one shot
// from a YAML manifest via -manifest.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/config"
	"github.com/clarionvoice/clarion/internal/history"
	"github.com/clarionvoice/clarion/internal/observe"
	"github.com/clarionvoice/clarion/internal/phonetic"
	"github.com/clarionvoice/clarion/internal/resilience"
	"github.com/clarionvoice/clarion/internal/webapi"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	manifestPath := flag.String("manifest", "", "score a recorded session from this YAML manifest and exit")
	flag.Parse()

	cfg := &config.Config{}
	if _, err := os.Stat(*configPath); err == nil {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "clarion: %v\n", err)
			return 1
		}
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "clarion: stat %q: %v\n", *configPath, err)
		return 1
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(cfg.Server.LogLevel.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cat, err := loadCatalog(cfg)
	if err != nil {
		slog.Error("failed to load catalog", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open history store", "err", err)
		return 1
	}
	defer closeStore()

	analyzer := buildAnalyzer(cfg)

	if *manifestPath != "" {
		return runManifest(ctx, *manifestPath, cat, analyzer, store)
	}
	return serve(ctx, cfg, *configPath, logLevel, cat, analyzer, store)
}

// serve runs the HTTP server until the signal context is cancelled.
func serve(
	ctx context.Context,
	cfg *config.Config,
	configPath string,
	logLevel *slog.LevelVar,
	cat *catalog.Catalog,
	analyzer *phonetic.Analyzer,
	store history.Store,
) int {
	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "clarion",
		ServiceVersion: version,
		Environment:    os.Getenv("CLARION_ENV"),
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// Apply log level changes live; everything else needs a restart.
	if _, err := os.Stat(configPath); err == nil {
		watcher, werr := config.NewWatcher(configPath, func(old, next *config.Config) {
			applyConfigChange(logLevel, config.Diff(old, next))
		})
		if werr != nil {
			slog.Warn("config watcher disabled", "err", werr)
		} else {
			defer watcher.Stop()
		}
	}

	server, err := webapi.New(webapi.Config{
		ListenAddr: cfg.Server.ListenAddr,
		Catalog:    cat,
		Store:      store,
		Analyzer:   analyzer,
	})
	if err != nil {
		slog.Error("failed to create server", "err", err)
		return 1
	}

	slog.Info("clarion starting",
		"listen_addr", cfg.Server.ListenAddr,
		"storage", storageName(cfg),
		"sentences", cat.TotalSentences(),
	)

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// applyConfigChange reacts to a config file change: log level updates take
// effect immediately, every other change is acknowledged with a warning so
// an edit never disappears silently. Catalog and analyzer are built once at
// startup, so their settings apply on the next start.
func applyConfigChange(logLevel *slog.LevelVar, d config.ConfigDiff) {
	if d.LogLevelChanged {
		logLevel.Set(d.NewLogLevel.SlogLevel())
		slog.Info("log level updated", "level", d.NewLogLevel)
	}
	if d.CatalogPathChanged {
		slog.Warn("catalog path changed, restart to load the new catalog",
			"path", d.NewCatalogPath)
	}
	if d.ThresholdChanged {
		slog.Warn("phonetic threshold changed, restart to apply",
			"threshold", d.NewThreshold)
	}
	if d.RequiresRestart {
		slog.Warn("listen address or storage changed, restart required")
	}
}

// loadCatalog returns the configured catalog file or the built-in set.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Builtin(), nil
	}
	return catalog.LoadFile(cfg.Catalog.Path)
}

// buildStore opens the configured history backend. The returned close
// function is a no-op for the file backend.
func buildStore(ctx context.Context, cfg *config.Config) (history.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := history.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		// Degrade to the local file store when postgres becomes
		// unreachable, so a scoring session is never lost to a
		// database outage.
		store := resilience.NewStoreFallback(
			history.NewPostgresStore(pool, cfg.Storage.HistoryLimit),
			"postgres",
			resilience.FallbackConfig{},
		)
		store.AddFallback("file", history.NewFileStore(cfg.HistoryPath(), cfg.Storage.HistoryLimit))
		return store, pool.Close, nil
	default:
		store := history.NewFileStore(cfg.HistoryPath(), cfg.Storage.HistoryLimit)
		return store, func() {}, nil
	}
}

func buildAnalyzer(cfg *config.Config) *phonetic.Analyzer {
	var opts []phonetic.Option
	if cfg.Analysis.PhoneticThreshold > 0 {
		opts = append(opts, phonetic.WithPhoneticThreshold(cfg.Analysis.PhoneticThreshold))
	}
	return phonetic.New(opts...)
}

func storageName(cfg *config.Config) string {
	if cfg.Storage.Backend == config.StoragePostgres {
		return "postgres"
	}
	return "file:" + cfg.HistoryPath()
}
