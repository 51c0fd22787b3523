package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewTableCommand creates the table command and its lifecycle subcommands.
func NewTableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Create, drop and inspect declared tables",
		Long: `Manage the lifecycle of tables declared under tables: in leaptable.yaml.

DDL is rendered from the declared columns using the target's dialect.`,
		Example: `  # Create the users table
  leaptable table create users

  # Check whether it exists
  leaptable table exists users

  # Show the live catalog view
  leaptable table describe users -o yaml`,
	}

	cmd.AddCommand(newTableCreateCommand())
	cmd.AddCommand(newTableDropCommand())
	cmd.AddCommand(newTableExistsCommand())
	cmd.AddCommand(newTableDescribeCommand())

	return cmd
}

func newTableCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <table>",
		Short: "Create a declared table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctl, err := cmdCtx.Controller(args[0])
			if err != nil {
				return err
			}
			if err := ctl.CreateTable(cmd.Context()); err != nil {
				return err
			}
			cmdCtx.Renderer.Println("created", ctl.Schema().QualifiedName())
			return nil
		},
	}
}

func newTableDropCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <table>",
		Short: "Drop a declared table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctl, err := cmdCtx.Controller(args[0])
			if err != nil {
				return err
			}
			if err := ctl.DropTable(cmd.Context()); err != nil {
				return err
			}
			cmdCtx.Renderer.Println("dropped", ctl.Schema().QualifiedName())
			return nil
		},
	}
}

func newTableExistsCommand() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "exists <table>",
		Short: "Report whether a declared table exists",
		Long: `Report whether a declared table exists.

With --quiet nothing is printed and a missing table is reported through a
non-zero exit status, for use in scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctl, err := cmdCtx.Controller(args[0])
			if err != nil {
				return err
			}
			exists, err := ctl.TableExists(cmd.Context())
			if err != nil {
				return err
			}
			if quiet {
				if !exists {
					return fmt.Errorf("table %s does not exist", ctl.Schema().QualifiedName())
				}
				return nil
			}
			_, _ = fmt.Fprintln(cmdCtx.Renderer.Out(), exists)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing; exit non-zero when the table is missing")
	return cmd
}

func newTableDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show a table's columns as the database reports them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctl, err := cmdCtx.Controller(args[0])
			if err != nil {
				return err
			}
			meta, err := ctl.Describe(cmd.Context())
			if err != nil {
				return err
			}

			return cmdCtx.Renderer.Value(meta, func(t table.Writer) {
				t.SetTitle(fmt.Sprintf("%s.%s (%d rows)", meta.Schema, meta.Name, meta.RowCount))
				t.AppendHeader(table.Row{"#", "column", "type", "nullable"})
				for _, col := range meta.Columns {
					t.AppendRow(table.Row{col.Position, col.Name, col.Type, col.Nullable})
				}
			})
		},
	}
}
