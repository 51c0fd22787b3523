package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/result"
	"github.com/spf13/cobra"
)

// NewSelectCommand creates the select command.
func NewSelectCommand() *cobra.Command {
	var (
		where, or []string
		columns   []string
		orderBy   string
		desc      bool
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "select <table>",
		Short: "Read rows from a declared table",
		Long: `Read rows from a declared table.

Filters take the form column<op>value where op is one of
=, !=, <>, <, <=, >, >= or ~ (LIKE). Every --where is ANDed in the
order given; every --or is then ORed onto the chain.`,
		Example: `  # All users
  leaptable select users

  # One user by email, as JSON
  leaptable select users --where email=john.doe@gmail.com -o json

  # Either of two ids, newest first
  leaptable select users --where id=1 --or id=2 --order-by id --desc`,
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
			schema := ctl.Schema()

			filters, err := parseFilters(schema, where, or)
			if err != nil {
				return err
			}
			b := applyFilters(ctl.SelectBuilder(), filters)

			if len(columns) > 0 {
				cols := make([]core.Column, 0, len(columns))
				for _, name := range columns {
					col, err := lookupColumn(schema, name)
					if err != nil {
						return err
					}
					cols = append(cols, col)
				}
				b.Columns(cols...)
			}
			if orderBy != "" {
				col, err := lookupColumn(schema, orderBy)
				if err != nil {
					return err
				}
				b.OrderBy(col, desc)
			}
			b.Limit(limit)

			rows, err := ctl.Read(cmd.Context(), b)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Rows(rows)
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "Filter ANDed onto the chain (repeatable)")
	cmd.Flags().StringArrayVar(&or, "or", nil, "Filter ORed onto the chain (repeatable)")
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Columns to return (default all)")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "Column to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of rows (0 for no limit)")

	return cmd
}

// NewInsertCommand creates the insert command.
func NewInsertCommand() *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "insert <table>",
		Short: "Insert a row into a declared table",
		Long: `Insert one row and print it as the database stored it.

Every required column must be given with --set; the bare word NULL
inserts a SQL null.`,
		Example: `  leaptable insert users --set email=john.doe@gmail.com --set salt=s1 --set hashed_password=h1`,
		Args:    cobra.ExactArgs(1),
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
			pairs, err := parseAssignments(ctl.Schema(), set)
			if err != nil {
				return err
			}

			b := ctl.InsertBuilder()
			for _, p := range pairs {
				b.Set(p.column, p.value)
			}

			row, err := ctl.Insert(cmd.Context(), b)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Rows([]result.Row{row})
		},
	}

	cmd.Flags().StringArrayVarP(&set, "set", "s", nil, "Column value as column=value (repeatable)")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	var (
		set, where, or []string
		all            bool
	)

	cmd := &cobra.Command{
		Use:   "update <table>",
		Short: "Update rows of a declared table",
		Long: `Update the rows matched by the filters.

An update without filters is refused unless --all is given.`,
		Example: `  leaptable update users --set salt=rotated --where email=john.doe@gmail.com`,
		Args:    cobra.ExactArgs(1),
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
			schema := ctl.Schema()

			pairs, err := parseAssignments(schema, set)
			if err != nil {
				return err
			}
			filters, err := parseFilters(schema, where, or)
			if err != nil {
				return err
			}
			if err := requireScope(filters, all); err != nil {
				return err
			}

			b := ctl.UpdateBuilder()
			for _, p := range pairs {
				b.Set(p.column, p.value)
			}
			b = applyFilters(b, filters)
			if all {
				b.AllowUnscoped()
			}

			n, err := ctl.Update(cmd.Context(), b)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Println(fmt.Sprintf("%d rows updated", n))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&set, "set", "s", nil, "New value as column=value (repeatable)")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "Filter ANDed onto the chain (repeatable)")
	cmd.Flags().StringArrayVar(&or, "or", nil, "Filter ORed onto the chain (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Allow updating every row")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var (
		where, or []string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "delete <table>",
		Short: "Delete rows from a declared table",
		Long: `Delete the rows matched by the filters.

A delete without filters is refused unless --all is given.`,
		Example: `  leaptable delete users --where id=1`,
		Args:    cobra.ExactArgs(1),
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

			filters, err := parseFilters(ctl.Schema(), where, or)
			if err != nil {
				return err
			}
			if err := requireScope(filters, all); err != nil {
				return err
			}

			b := applyFilters(ctl.DeleteBuilder(), filters)
			if all {
				b.AllowUnscoped()
			}

			n, err := ctl.Delete(cmd.Context(), b)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Println(fmt.Sprintf("%d rows deleted", n))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "Filter ANDed onto the chain (repeatable)")
	cmd.Flags().StringArrayVar(&or, "or", nil, "Filter ORed onto the chain (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Allow deleting every row")

	return cmd
}

func requireScope(filters []filter, all bool) error {
	switch {
	case len(filters) == 0 && !all:
		return errors.New("refusing to touch every row: add --where or pass --all")
	case len(filters) > 0 && all:
		return errors.New("--all cannot be combined with --where or --or")
	}
	return nil
}
