package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/taskflow/internal/service"
)

func newNotesCmd(env *cliEnv) *cobra.Command {
	notesCmd := &cobra.Command{
		Use:     "notes",
		Short:   "Manage notebook entries",
		Aliases: []string{"n"},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List active notes",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := newTable(cmd, "ID", "Title", "Updated")
			for _, n := range env.app.ListNotes(cmd.Context()) {
				t.AppendRow([]any{n.ID, n.Title, formatMillis(n.UpdatedAt)})
			}
			t.Render()
			return nil
		},
	}

	var title, content string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.CreateNoteRequest
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("content") {
				req.Content = &content
			}
			n, err := env.app.CreateNote(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created note %s (%q)\n", n.ID, n.Title)
			return nil
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "Note title")
	addCmd.Flags().StringVar(&content, "content", "", "Note content")

	deleteCmd := &cobra.Command{
		Use:     "delete [noteID]",
		Short:   "Move a note to the trash",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.DeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved note %s to the trash\n", args[0])
			return nil
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore [noteID]",
		Short: "Restore a note from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.RestoreNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored note %s\n", args[0])
			return nil
		},
	}

	purgeCmd := &cobra.Command{
		Use:   "purge [noteID]",
		Short: "Delete a note permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.PurgeNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged note %s\n", args[0])
			return nil
		},
	}

	notesCmd.AddCommand(listCmd, addCmd, deleteCmd, restoreCmd, purgeCmd)
	return notesCmd
}
