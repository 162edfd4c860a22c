package store

import (
	"context"
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Tomlord1122/taskflow/internal/domain"
	"github.com/Tomlord1122/taskflow/internal/repository"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func newTestStore(t *testing.T, repo repository.SlotRepository) (*Store, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return New(repo, WithClock(func() time.Time { return fixedNow }), WithLogger(logger)), hook
}

type failingRepo struct {
	repository.SlotRepository
	loadErr map[string]error
	saveErr error
}

func (f *failingRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := f.loadErr[key]; err != nil {
		return nil, false, err
	}
	return f.SlotRepository.Load(ctx, key)
}

func (f *failingRepo) Save(ctx context.Context, key string, value []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.SlotRepository.Save(ctx, key, value)
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	s, hook := newTestStore(t, repository.NewMemorySlotRepository(nil))

	snap := s.Load(context.Background())

	if len(snap.Notes) != 1 || snap.Notes[0].ID != domain.WelcomeNoteID {
		t.Fatalf("unexpected notes: %+v", snap.Notes)
	}
	if snap.Notes[0].CreatedAt != fixedNow.UnixMilli() {
		t.Fatalf("default note not stamped with clock: %d", snap.Notes[0].CreatedAt)
	}
	if len(snap.Categories) != 1 || len(snap.Categories[0].Todos) != 2 {
		t.Fatalf("unexpected categories: %+v", snap.Categories)
	}
	if snap.DeletedTasks == nil || len(snap.DeletedTasks) != 0 {
		t.Fatalf("expected empty, non-nil trash: %#v", snap.DeletedTasks)
	}
	if snap.Preferences != domain.DefaultPreferences() {
		t.Fatalf("unexpected preferences: %+v", snap.Preferences)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("missing slots must not be logged: %v", hook.AllEntries())
	}
}

func TestLoadMalformedKeyFallsBackIndependently(t *testing.T) {
	repo := repository.NewMemorySlotRepository(map[string]string{
		KeyNotes:        `{not json`,
		KeyCategories:   `[{"id":"c1","name":"Work","createdAt":1,"todos":[{"id":"x","text":"t","completed":false,"createdAt":1}]}]`,
		KeyDeletedTasks: `[{"id":"d","text":"gone","completed":false,"createdAt":1,"originalCategoryId":"c1","deletedAt":2}]`,
		KeyTheme:        themeDark,
		KeyPalette:      string(domain.PaletteVolcano),
	})
	s, hook := newTestStore(t, repo)

	snap := s.Load(context.Background())

	if len(snap.Notes) != 1 || snap.Notes[0].ID != domain.WelcomeNoteID {
		t.Fatalf("malformed notes should fall back to default: %+v", snap.Notes)
	}
	if len(snap.Categories) != 1 || snap.Categories[0].ID != "c1" {
		t.Fatalf("categories should be loaded: %+v", snap.Categories)
	}
	if len(snap.DeletedTasks) != 1 || snap.DeletedTasks[0].OriginalCategoryID != "c1" {
		t.Fatalf("trash should be loaded: %+v", snap.DeletedTasks)
	}
	if !snap.Preferences.DarkMode || snap.Preferences.Palette != domain.PaletteVolcano {
		t.Fatalf("preferences should be loaded: %+v", snap.Preferences)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != log.WarnLevel || entry.Data["key"] != KeyNotes {
		t.Fatalf("expected a warning about the notes slot, got %+v", entry)
	}
}

func TestLoadReadErrorFallsBack(t *testing.T) {
	repo := &failingRepo{
		SlotRepository: repository.NewMemorySlotRepository(map[string]string{KeyNotes: `[]`}),
		loadErr:        map[string]error{KeyCategories: errors.New("connection reset")},
	}
	s, _ := newTestStore(t, repo)

	snap := s.Load(context.Background())

	if len(snap.Notes) != 0 {
		t.Fatalf("stored empty notes must stay empty: %+v", snap.Notes)
	}
	if len(snap.Categories) != 1 || snap.Categories[0].ID != domain.DefaultCategoryID {
		t.Fatalf("unreadable categories should fall back: %+v", snap.Categories)
	}
}

func TestLoadNormalizesNulls(t *testing.T) {
	repo := repository.NewMemorySlotRepository(map[string]string{
		KeyNotes:        `null`,
		KeyCategories:   `[{"id":"c","name":"n","createdAt":1}]`,
		KeyDeletedTasks: `null`,
		KeyPalette:      `neon`,
	})
	s, _ := newTestStore(t, repo)

	snap := s.Load(context.Background())

	if snap.Notes == nil || snap.DeletedTasks == nil || snap.Categories[0].Todos == nil {
		t.Fatalf("collections must be non-nil: %#v", snap)
	}
	if snap.Preferences.Palette != domain.PaletteNature {
		t.Fatalf("unknown palette should fall back: %q", snap.Preferences.Palette)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	repo := repository.NewMemorySlotRepository(nil)
	s, _ := newTestStore(t, repo)
	ctx := context.Background()

	reminder := int64(99)
	s.SaveNotes(ctx, []domain.Note{{ID: "n", Title: "t", IsDeleted: true}})
	s.SaveCategories(ctx, []domain.Category{{ID: "c", Name: "C", Todos: []domain.TodoItem{{ID: "x", Reminder: &reminder}}}})
	s.SaveDeletedTasks(ctx, []domain.DeletedTodoItem{})
	s.SavePreferences(ctx, domain.Preferences{DarkMode: true, Palette: domain.PaletteEarth})

	raw, _, _ := repo.Load(ctx, KeyTheme)
	if string(raw) != "dark" {
		t.Fatalf("dark mode must be stored as a string, got %q", raw)
	}

	snap := s.Load(ctx)
	if len(snap.Notes) != 1 || !snap.Notes[0].IsDeleted {
		t.Fatalf("unexpected notes: %+v", snap.Notes)
	}
	if got := snap.Categories[0].Todos[0].Reminder; got == nil || *got != 99 {
		t.Fatalf("reminder lost: %v", got)
	}
	if len(snap.DeletedTasks) != 0 {
		t.Fatalf("unexpected trash: %+v", snap.DeletedTasks)
	}
	if !snap.Preferences.DarkMode || snap.Preferences.Palette != domain.PaletteEarth {
		t.Fatalf("unexpected preferences: %+v", snap.Preferences)
	}
}

func TestSaveFailureIsLoggedNotReturned(t *testing.T) {
	repo := &failingRepo{
		SlotRepository: repository.NewMemorySlotRepository(nil),
		saveErr:        errors.New("quota exceeded"),
	}
	s, hook := newTestStore(t, repo)

	s.SaveNotes(context.Background(), []domain.Note{})

	entry := hook.LastEntry()
	if entry == nil || entry.Level != log.ErrorLevel {
		t.Fatalf("expected error log, got %+v", entry)
	}
	if entry.Data["key"] != KeyNotes {
		t.Fatalf("unexpected key field: %v", entry.Data["key"])
	}
}
