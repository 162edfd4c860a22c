package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/taskflow/internal/service"
)

func newTrashCmd(env *cliEnv) *cobra.Command {
	trashCmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and empty the recycle bin",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List trashed notes and tasks",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trash := env.app.Trash(cmd.Context())
			if trash.Count() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Trash is empty")
				return nil
			}
			t := newTable(cmd, "Kind", "ID", "Title", "Deleted")
			for _, n := range trash.Notes {
				t.AppendRow([]any{"note", n.ID, n.Title, formatMillis(n.UpdatedAt)})
			}
			for _, d := range trash.Tasks {
				t.AppendRow([]any{"task", d.ID, d.Text, formatMillis(d.DeletedAt)})
			}
			t.Render()
			return nil
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore [id]",
		Short: "Restore a trashed task or note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			_, err := env.app.RestoreTask(cmd.Context(), id)
			if errors.Is(err, service.ErrNotFound) {
				err = env.app.RestoreNote(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", id)
			return nil
		},
	}

	purgeCmd := &cobra.Command{
		Use:   "purge [id]",
		Short: "Delete a trashed task or note permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			purge := env.app.PurgeNote
			if isTrashedTask(env.app.Trash(cmd.Context()), id) {
				purge = env.app.PurgeTask
			}
			if err := purge(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %s\n", id)
			return nil
		},
	}

	trashCmd.AddCommand(listCmd, restoreCmd, purgeCmd)
	return trashCmd
}

func isTrashedTask(trash service.TrashResponse, id string) bool {
	for _, d := range trash.Tasks {
		if d.ID == id {
			return true
		}
	}
	return false
}
