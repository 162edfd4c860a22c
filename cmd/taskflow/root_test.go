package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Tomlord1122/taskflow/internal/config"
	"github.com/Tomlord1122/taskflow/internal/repository"
	"github.com/Tomlord1122/taskflow/internal/service"
	"github.com/Tomlord1122/taskflow/internal/store"
)

// sharedApp keeps one in-memory controller across invocations so a test can
// chain commands.
func sharedApp(t *testing.T) opener {
	t.Helper()
	logger, _ := test.NewNullLogger()
	app := service.NewAppService(
		store.New(repository.NewMemorySlotRepository(nil), store.WithLogger(logger)),
		service.WithLogger(logger),
	)
	app.Load(context.Background())
	return func(context.Context, bool) (service.AppService, func() error, error) {
		return app, func() error { return nil }, nil
	}
}

func run(t *testing.T, open opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNotesList(t *testing.T) {
	out, err := run(t, sharedApp(t), "notes", "list")
	if err != nil {
		t.Fatalf("notes list: %v", err)
	}
	if !strings.Contains(out, "Welcome to Notes") {
		t.Fatalf("expected welcome note, got:\n%s", out)
	}
}

func TestTaskTrashCycle(t *testing.T) {
	open := sharedApp(t)

	if _, err := run(t, open, "tasks", "delete", "default-cat", "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, err := run(t, open, "trash", "list")
	if err != nil {
		t.Fatalf("trash list: %v", err)
	}
	if !strings.Contains(out, "Explore the new theme") {
		t.Fatalf("expected trashed task listed, got:\n%s", out)
	}

	if _, err := run(t, open, "trash", "restore", "t1"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	out, _ = run(t, open, "trash", "list")
	if !strings.Contains(out, "Trash is empty") {
		t.Fatalf("expected empty trash, got:\n%s", out)
	}
	out, _ = run(t, open, "tasks", "list", "default-cat")
	if !strings.Contains(out, "Explore the new theme") {
		t.Fatalf("expected restored task listed, got:\n%s", out)
	}
}

func TestTrashRestoreFallsBackToNotes(t *testing.T) {
	open := sharedApp(t)

	if _, err := run(t, open, "notes", "delete", "welcome-note"); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if _, err := run(t, open, "trash", "restore", "welcome-note"); err != nil {
		t.Fatalf("restore note: %v", err)
	}
	out, _ := run(t, open, "notes", "list")
	if !strings.Contains(out, "Welcome to Notes") {
		t.Fatalf("expected note restored, got:\n%s", out)
	}
}

func TestTrashPurgeLeavesActiveNote(t *testing.T) {
	open := sharedApp(t)

	if _, err := run(t, open, "trash", "purge", "welcome-note"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	out, _ := run(t, open, "notes", "list")
	if !strings.Contains(out, "Welcome to Notes") {
		t.Fatalf("active note must survive purge, got:\n%s", out)
	}

	if _, err := run(t, open, "notes", "delete", "welcome-note"); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if _, err := run(t, open, "trash", "purge", "welcome-note"); err != nil {
		t.Fatalf("purge trashed note: %v", err)
	}
	out, _ = run(t, open, "trash", "list")
	if !strings.Contains(out, "Trash is empty") {
		t.Fatalf("expected trashed note purged, got:\n%s", out)
	}
}

func TestTrashPurgeTaskKeepsNotes(t *testing.T) {
	open := sharedApp(t)

	if _, err := run(t, open, "tasks", "delete", "default-cat", "t1"); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := run(t, open, "trash", "purge", "t1"); err != nil {
		t.Fatalf("purge task: %v", err)
	}
	out, _ := run(t, open, "trash", "list")
	if !strings.Contains(out, "Trash is empty") {
		t.Fatalf("expected task purged, got:\n%s", out)
	}
	out, _ = run(t, open, "notes", "list")
	if !strings.Contains(out, "Welcome to Notes") {
		t.Fatalf("purging a task must not touch notes, got:\n%s", out)
	}
}

func TestThemeCommands(t *testing.T) {
	open := sharedApp(t)

	out, err := run(t, open, "theme", "toggle")
	if err != nil || !strings.Contains(out, "Mode: dark") {
		t.Fatalf("toggle: %v\n%s", err, out)
	}
	out, err = run(t, open, "theme", "palette", "celestial")
	if err != nil || !strings.Contains(out, "Palette: celestial") {
		t.Fatalf("palette: %v\n%s", err, out)
	}
	if _, err := run(t, open, "theme", "palette", "neon"); err == nil {
		t.Fatalf("expected error for unknown palette")
	}
}

func TestCategoriesAddRejectsBlankName(t *testing.T) {
	if _, err := run(t, sharedApp(t), "categories", "add", "   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestCheckDurable(t *testing.T) {
	lookup := func(env map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		}
	}

	cfg, err := config.FromLookup(lookup(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := checkDurable(cfg, false); !errors.Is(err, errNoDurableStore) {
		t.Fatalf("expected refusal of the implicit memory store, got %v", err)
	}
	if err := checkDurable(cfg, true); err != nil {
		t.Fatalf("--memory must allow the memory store, got %v", err)
	}

	cfg, _ = config.FromLookup(lookup(map[string]string{"TASKFLOW_STORE": "memory"}))
	if err := checkDurable(cfg, false); err != nil {
		t.Fatalf("explicit memory store must be allowed, got %v", err)
	}
	cfg, _ = config.FromLookup(lookup(map[string]string{"BLUEPRINT_DB_HOST": "db"}))
	if err := checkDurable(cfg, false); err != nil {
		t.Fatalf("postgres store must be allowed, got %v", err)
	}
}
