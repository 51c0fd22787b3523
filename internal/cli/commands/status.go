package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaptable/pkg/result"
	"github.com/leapstack-labs/leaptable/pkg/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statusConcurrency bounds the catalog lookups in flight at once.
const statusConcurrency = 4

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether every declared table exists",
		Long: `Check every table declared in leaptable.yaml against the target's
catalog and print one row per table. The command fails when any lookup
fails; a missing table is reported, not treated as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			schemas := cmdCtx.Cfg.Schemas()
			if len(schemas) == 0 {
				cmdCtx.Renderer.Println("No tables declared in", configFileHint(cmdCtx.Cfg))
				return nil
			}

			type check struct {
				exists bool
				err    error
			}
			checks := make([]check, len(schemas))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(statusConcurrency)
			for i, schema := range schemas {
				g.Go(func() error {
					ctl := table.New[result.Row](cmdCtx.Exec, schema, table.WithLogger[result.Row](cmdCtx.Logger))
					exists, err := ctl.TableExists(ctx)
					checks[i] = check{exists: exists, err: err}
					return nil
				})
			}
			_ = g.Wait()

			rows := make([]result.Row, len(schemas))
			var errs []error
			for i, schema := range schemas {
				status := "missing"
				switch {
				case checks[i].err != nil:
					status = "error"
					errs = append(errs, checks[i].err)
				case checks[i].exists:
					status = "present"
				}
				rows[i] = result.Row{
					{Name: "table", Value: schema.QualifiedName()},
					{Name: "columns", Value: int64(len(schema.Columns()))},
					{Name: "status", Value: status},
				}
			}

			if err := cmdCtx.Renderer.Rows(rows); err != nil {
				return err
			}
			if len(errs) > 0 {
				cmdCtx.Logger.Debug("status checks failed", slog.Int("failed", len(errs)))
				return fmt.Errorf("%d of %d table checks failed: %w", len(errs), len(schemas), errors.Join(errs...))
			}
			return nil
		},
	}
}
