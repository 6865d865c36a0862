package main

import (
	"context"
	"fmt"

	"github.com/jothom/inquiry/internal/config"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/logger"
	"github.com/jothom/inquiry/internal/store"
)

// loadConfig loads the merged configuration, applies command line
// overrides and configures logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	if !config.Exists() {
		logger.Debug("No config file found, using defaults (run 'inquiry setup' to create one)")
	}
	logger.Debug("Config loaded: data_dir=%s submit_timeout=%s", cfg.DataDir, cfg.SubmitTimeout)
	return cfg, nil
}

// openBackend starts the embedded store under the configured data directory.
func openBackend(ctx context.Context, cfg *config.Config) (*store.Backend, error) {
	b, err := store.Open(ctx, cfg.DataDir, cfg.Retention())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return b, nil
}

// newPipeline wires a submission pipeline to the backend.
func newPipeline(cfg *config.Config, b *store.Backend) *inquiry.Pipeline {
	opts := []inquiry.Option{inquiry.WithTimeout(cfg.SubmitTimeout)}
	if cfg.UploadAttachments {
		opts = append(opts, inquiry.WithUploader(b))
	}
	return inquiry.NewPipeline(b, opts...)
}
