package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/Tomlord1122/taskflow/internal/service"
)

func newTasksCmd(env *cliEnv) *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:     "tasks",
		Short:   "Manage todos inside categories",
		Aliases: []string{"t"},
	}

	listCmd := &cobra.Command{
		Use:     "list [categoryID]",
		Short:   "List todos, optionally of a single category",
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := env.app.ListCategories(cmd.Context())
			if len(args) == 1 {
				c, err := env.app.GetCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				cats = []service.CategoryResponse{c}
			}

			t := newTable(cmd, "Category", "ID", "Task", "Status", "Reminder")
			for _, c := range cats {
				for _, td := range c.Todos {
					status := text.FgHiYellow.Sprint("open")
					if td.Completed {
						status = text.FgHiGreen.Sprint("done")
					} else if td.Overdue {
						status = text.FgHiRed.Sprint("overdue")
					}
					reminder := ""
					if td.Reminder != nil {
						reminder = formatMillis(*td.Reminder)
					}
					t.AppendRow([]any{c.Name, td.ID, td.Text, status, reminder})
				}
			}
			t.Render()
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [categoryID] [text]",
		Short: "Add a todo at the top of a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.CreateTodoRequest{Text: strings.Join(args[1:], " ")}
			td, err := env.app.AddTodo(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s\n", td.ID)
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle [categoryID] [taskID]",
		Short: "Flip a todo between open and done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			td, err := env.app.ToggleTodo(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			state := "open"
			if td.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is %s\n", td.ID, state)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete [categoryID] [taskID]",
		Short:   "Move a todo to the trash",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.DeleteTodo(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s to the trash\n", args[1])
			return nil
		},
	}

	suggestCmd := &cobra.Command{
		Use:   "suggest [categoryID]",
		Short: "Ask the assistant for todos in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := env.app.SuggestTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, td := range todos {
				fmt.Fprintf(cmd.OutOrStdout(), "+ %s\n", td.Text)
			}
			return nil
		},
	}

	tasksCmd.AddCommand(listCmd, addCmd, toggleCmd, deleteCmd, suggestCmd)
	return tasksCmd
}
