// Package commands implements the leaptable subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaptable/internal/cli/output"
	"github.com/leapstack-labs/leaptable/internal/config"
	"github.com/leapstack-labs/leaptable/pkg/adapter"
	"github.com/leapstack-labs/leaptable/pkg/executor"
	"github.com/leapstack-labs/leaptable/pkg/result"
	"github.com/leapstack-labs/leaptable/pkg/table"
	"github.com/spf13/cobra"
)

type configKey struct{}

type loggerKey struct{}

// WithConfig stores the loaded config in ctx.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from ctx, or the defaults when none was stored.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

// WithLogger stores the logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from ctx.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Adapter  adapter.Adapter
	Exec     *executor.SQLExecutor
	Renderer *output.Renderer
}

// NewCommandContext connects to the configured target.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig(ctx)
	logger := GetLogger(ctx)

	adp, err := adapter.Open(ctx, cfg.Target.AdapterConfig(), logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := adp.Close(); err != nil {
			logger.Warn("failed to close adapter", slog.String("error", err.Error()))
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Adapter:  adp,
		Exec:     executor.New(adp, logger),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}, cleanup, nil
}

// Controller returns a row controller for the table declared as name.
func (c *CommandContext) Controller(name string) (*table.Controller[result.Row], error) {
	schema, err := c.Cfg.Schema(name)
	if err != nil {
		return nil, fmt.Errorf("%w\nHint: declare it under tables: in %s", err, configFileHint(c.Cfg))
	}
	return table.New[result.Row](c.Exec, schema, table.WithLogger[result.Row](c.Logger)), nil
}

func configFileHint(cfg *config.Config) string {
	if cfg.File != "" {
		return cfg.File
	}
	return config.ConfigFileName
}
