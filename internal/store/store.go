// Package store persists the application collections under named slots and
// restores them at startup, substituting defaults for anything missing or
// unreadable.
package store

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/domain"
	"github.com/Tomlord1122/taskflow/internal/repository"
)

// Slot keys, shared with the browser client's local storage layout.
const (
	KeyNotes        = "tf_notes"
	KeyCategories   = "tf_categories"
	KeyDeletedTasks = "tf_deleted_tasks"
	KeyTheme        = "tf_theme"
	KeyPalette      = "tf_palette"
)

const (
	themeDark  = "dark"
	themeLight = "light"
)

// Snapshot is everything restored at startup.
type Snapshot struct {
	Notes        []domain.Note
	Categories   []domain.Category
	DeletedTasks []domain.DeletedTodoItem
	Preferences  domain.Preferences
}

// Store is the typed local store over a SlotRepository.
type Store struct {
	repo   repository.SlotRepository
	now    func() time.Time
	logger log.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp default records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the logger used for load and save failures.
func WithLogger(l log.FieldLogger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store backed by repo.
func New(repo repository.SlotRepository, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		now:    time.Now,
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores every slot. It never fails: each key falls back to its own
// default when missing or malformed, independently of the others.
func (s *Store) Load(ctx context.Context) Snapshot {
	now := s.now().UnixMilli()
	var snap Snapshot

	if notes, ok := loadJSON[[]domain.Note](ctx, s, KeyNotes); ok {
		snap.Notes = notes
	} else {
		snap.Notes = domain.DefaultNotes(now)
	}
	if snap.Notes == nil {
		snap.Notes = []domain.Note{}
	}

	if cats, ok := loadJSON[[]domain.Category](ctx, s, KeyCategories); ok {
		snap.Categories = normalizeCategories(cats)
	} else {
		snap.Categories = domain.DefaultCategories(now)
	}

	if trash, ok := loadJSON[[]domain.DeletedTodoItem](ctx, s, KeyDeletedTasks); ok && trash != nil {
		snap.DeletedTasks = trash
	} else {
		snap.DeletedTasks = []domain.DeletedTodoItem{}
	}

	snap.Preferences = s.loadPreferences(ctx)
	return snap
}

func normalizeCategories(cats []domain.Category) []domain.Category {
	if cats == nil {
		return []domain.Category{}
	}
	for i := range cats {
		if cats[i].Todos == nil {
			cats[i].Todos = []domain.TodoItem{}
		}
	}
	return cats
}

func (s *Store) loadPreferences(ctx context.Context) domain.Preferences {
	prefs := domain.DefaultPreferences()

	if raw, ok := s.loadRaw(ctx, KeyTheme); ok {
		prefs.DarkMode = string(raw) == themeDark
	}
	if raw, ok := s.loadRaw(ctx, KeyPalette); ok {
		p, err := domain.ParsePalette(string(raw))
		if err != nil {
			s.logger.WithField("key", KeyPalette).WithError(err).Warn("Ignoring stored palette")
		} else {
			prefs.Palette = p
		}
	}
	return prefs
}

func (s *Store) loadRaw(ctx context.Context, key string) ([]byte, bool) {
	raw, found, err := s.repo.Load(ctx, key)
	if err != nil {
		s.logger.WithField("key", key).WithError(err).Warn("Failed to read slot, using default")
		return nil, false
	}
	return raw, found
}

func loadJSON[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var zero T
	raw, ok := s.loadRaw(ctx, key)
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.WithField("key", key).WithError(err).Warn("Malformed slot, using default")
		return zero, false
	}
	return v, true
}

// SaveNotes persists the notes collection. Failures are logged, not returned.
func (s *Store) SaveNotes(ctx context.Context, notes []domain.Note) {
	s.saveJSON(ctx, KeyNotes, notes)
}

// SaveCategories persists the categories with their todos.
func (s *Store) SaveCategories(ctx context.Context, cats []domain.Category) {
	s.saveJSON(ctx, KeyCategories, cats)
}

// SaveDeletedTasks persists the trash.
func (s *Store) SaveDeletedTasks(ctx context.Context, trash []domain.DeletedTodoItem) {
	s.saveJSON(ctx, KeyDeletedTasks, trash)
}

// SavePreferences persists dark mode and palette under their own keys.
func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) {
	theme := themeLight
	if prefs.DarkMode {
		theme = themeDark
	}
	s.saveRaw(ctx, KeyTheme, []byte(theme))
	s.saveRaw(ctx, KeyPalette, []byte(prefs.Palette))
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.WithField("key", key).WithError(err).Error("Failed to encode slot")
		return
	}
	s.saveRaw(ctx, key, data)
}

func (s *Store) saveRaw(ctx context.Context, key string, data []byte) {
	if err := s.repo.Save(ctx, key, data); err != nil {
		s.logger.WithField("key", key).WithError(err).Error("Failed to persist slot")
	}
}
