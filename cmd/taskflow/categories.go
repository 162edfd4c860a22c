package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/taskflow/internal/service"
)

func newCategoriesCmd(env *cliEnv) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:     "categories",
		Short:   "Manage task categories",
		Aliases: []string{"c"},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List categories with their counters",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := newTable(cmd, "ID", "Name", "Open", "Done")
			for _, c := range env.app.ListCategories(cmd.Context()) {
				t.AppendRow([]any{c.ID, c.Name, c.Open, c.Done})
			}
			t.Render()
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.app.CreateCategory(cmd.Context(), service.CreateCategoryRequest{Name: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %s (%q)\n", c.ID, c.Name)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete [categoryID]",
		Short:   "Delete a category and its todos",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		},
	}

	categoriesCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return categoriesCmd
}
