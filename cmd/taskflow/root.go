package main

import (
	"context"
	"errors"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tomlord1122/taskflow/internal/assistant"
	"github.com/Tomlord1122/taskflow/internal/bootstrap"
	"github.com/Tomlord1122/taskflow/internal/config"
	"github.com/Tomlord1122/taskflow/internal/service"
	"github.com/Tomlord1122/taskflow/internal/store"
)

// opener builds a loaded controller and the function releasing its backend.
type opener func(ctx context.Context, memory bool) (service.AppService, func() error, error)

type cliEnv struct {
	open   opener
	memory bool

	app   service.AppService
	close func() error
}

func newRootCmd(open opener) *cobra.Command {
	env := &cliEnv{open: open}

	rootCmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "Manage notes, task lists and the recycle bin",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, closeFn, err := env.open(cmd.Context(), env.memory)
			if err != nil {
				return err
			}
			env.app = app
			env.close = closeFn
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if env.close == nil {
				return nil
			}
			return env.close()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&env.memory, "memory", false, "Use a throwaway in-memory store")

	rootCmd.AddCommand(
		newNotesCmd(env),
		newTasksCmd(env),
		newCategoriesCmd(env),
		newTrashCmd(env),
		newThemeCmd(env),
	)
	return rootCmd
}

func openApp(ctx context.Context, memory bool) (service.AppService, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg.ApplyLogging()
	if err := checkDurable(cfg, memory); err != nil {
		return nil, nil, err
	}
	if memory {
		cfg.Store = config.StoreMemory
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	ai, err := assistant.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		_ = storage.Close()
		return nil, nil, err
	}

	app := service.NewAppService(
		store.New(storage.Repo),
		service.WithAssistant(ai),
		service.WithRestorePolicy(cfg.RestorePolicy),
	)
	app.Load(ctx)
	log.Debug("Application state ready")
	return app, storage.Close, nil
}

var errNoDurableStore = errors.New("no durable store configured: set TASKFLOW_STORE or BLUEPRINT_DB_HOST, or pass --memory for a throwaway session")

// checkDurable refuses the implicit memory fallback unless --memory was passed.
func checkDurable(cfg *config.Config, memory bool) error {
	if cfg.StoreDefaulted && !memory {
		return errNoDurableStore
	}
	return nil
}

func newTable(cmd *cobra.Command, headers ...string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	row := make(table.Row, 0, len(headers))
	for _, h := range headers {
		row = append(row, text.FgGreen.Sprint(h))
	}
	t.AppendHeader(row)
	return t
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
