package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/regberg-labs/micapress/pkg/config"
	"github.com/regberg-labs/micapress/pkg/engine"
	"github.com/regberg-labs/micapress/pkg/gleif"
	"github.com/regberg-labs/micapress/pkg/observability"
	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// setupLogging installs the process logger at the configured level. CLI
// diagnostics go to stderr so generated documents on stdout stay clean.
func setupLogging(cfg *config.Config, w io.Writer) {
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadIndex returns the taxonomy index, honoring the catalog override
// file when one is configured.
func loadIndex(cfg *config.Config) (*taxonomy.Index, error) {
	if cfg.CatalogFile == "" {
		return taxonomy.DefaultIndex()
	}
	data, err := os.ReadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}
	cat, err := taxonomy.Load(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", cfg.CatalogFile, err)
	}
	return taxonomy.NewIndex(cat), nil
}

// buildEngine wires the engine from process configuration: catalog
// override, GLEIF registry client, optional telemetry. The returned
// cleanup flushes the telemetry provider and must always be called.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, func(), error) {
	ix, err := loadIndex(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []engine.Option{
		engine.WithIndex(ix),
		engine.WithRegistry(gleif.NewClient(gleif.Config{
			BaseURL:  cfg.GLEIFBaseURL,
			APIToken: cfg.GLEIFToken,
			Timeout:  cfg.GLEIFTimeout,
		})),
	}

	cleanup := func() {}
	if cfg.Telemetry {
		obsCfg := observability.DefaultConfig()
		obsCfg.Enabled = true
		obsCfg.Environment = cfg.Environment
		obsCfg.OTLPEndpoint = cfg.OTLPEndpoint
		provider, err := observability.New(ctx, obsCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("telemetry: %w", err)
		}
		opts = append(opts, engine.WithObservability(provider))
		cleanup = func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = provider.Shutdown(shutdownCtx)
		}
	}

	eng, err := engine.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}

// readRecord loads and parses a record from a file path, or from stdin
// when the path is "-".
func readRecord(path string) (*whitepaper.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return whitepaper.ParseRecord(data)
}
