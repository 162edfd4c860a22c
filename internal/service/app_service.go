package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/assistant"
	"github.com/Tomlord1122/taskflow/internal/domain"
	"github.com/Tomlord1122/taskflow/internal/store"
)

// --- Collaborators ---

// Persister is the local store as seen by the controller.
type Persister interface {
	Load(ctx context.Context) store.Snapshot
	SaveNotes(ctx context.Context, notes []domain.Note)
	SaveCategories(ctx context.Context, cats []domain.Category)
	SaveDeletedTasks(ctx context.Context, trash []domain.DeletedTodoItem)
	SavePreferences(ctx context.Context, prefs domain.Preferences)
}

// Assistant is the remote suggestion client.
type Assistant interface {
	SuggestTasks(ctx context.Context, categoryName string) ([]string, error)
	EnhanceNote(ctx context.Context, title, content string) (assistant.Enhancement, error)
}

// --- Service Interface ---

// AppService is the root controller: it owns the application state, routes
// user actions to the collection transforms and persists what changed.
type AppService interface {
	// Load restores state from the store. It runs once; later calls are no-ops.
	// Every mutation fails with ErrNotLoaded until it has run.
	Load(ctx context.Context)
	Loaded() bool

	ListNotes(ctx context.Context) []domain.Note
	GetNote(ctx context.Context, id string) (domain.Note, error)
	CreateNote(ctx context.Context, req CreateNoteRequest) (domain.Note, error)
	UpdateNote(ctx context.Context, id string, req UpdateNoteRequest) (domain.Note, error)
	// DeleteNote soft-deletes the note; it moves to the trash view.
	DeleteNote(ctx context.Context, id string) error
	RestoreNote(ctx context.Context, id string) error
	// PurgeNote removes a soft-deleted note for good. Active notes and unknown
	// ids are left alone.
	PurgeNote(ctx context.Context, id string) error

	ListCategories(ctx context.Context) []CategoryResponse
	GetCategory(ctx context.Context, id string) (CategoryResponse, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	// DeleteCategory discards the category together with its todos.
	DeleteCategory(ctx context.Context, id string) error

	GetTodo(ctx context.Context, categoryID, todoID string) (domain.TodoItem, error)
	AddTodo(ctx context.Context, categoryID string, req CreateTodoRequest) (domain.TodoItem, error)
	UpdateTodo(ctx context.Context, categoryID, todoID string, req UpdateTodoRequest) (domain.TodoItem, error)
	ToggleTodo(ctx context.Context, categoryID, todoID string) (domain.TodoItem, error)
	// DeleteTodo moves the todo into the trash.
	DeleteTodo(ctx context.Context, categoryID, todoID string) error

	Trash(ctx context.Context) TrashResponse
	RestoreTask(ctx context.Context, id string) (domain.TodoItem, error)
	// PurgeTask removes a trashed todo for good. Unknown ids are a no-op.
	PurgeTask(ctx context.Context, id string) error

	Preferences(ctx context.Context) domain.Preferences
	ToggleDarkMode(ctx context.Context) (domain.Preferences, error)
	SetPalette(ctx context.Context, req SetPaletteRequest) (domain.Preferences, error)

	// SuggestTasks asks the assistant for todos and prepends them to the
	// category.
	SuggestTasks(ctx context.Context, categoryID string) ([]domain.TodoItem, error)
	// EnhanceNote asks the assistant to rewrite the note's title and content.
	EnhanceNote(ctx context.Context, noteID string) (domain.Note, error)
}

// --- Service Implementation ---

// AppState is the whole in-memory application state.
type AppState struct {
	Notes        []domain.Note
	Categories   []domain.Category
	DeletedTasks []domain.DeletedTodoItem
	Preferences  domain.Preferences
}

type slot uint8

const (
	slotNotes slot = 1 << iota
	slotCategories
	slotDeletedTasks
	slotPreferences
)

type appService struct {
	mu     sync.Mutex
	state  AppState
	loaded bool

	store     Persister
	assistant Assistant
	policy    domain.RestorePolicy
	now       func() time.Time
	newID     func() string
	logger    log.FieldLogger

	// generations holds the latest assistant request number per target.
	generations map[string]uint64
}

// Option configures the service.
type Option func(*appService)

// WithAssistant enables SuggestTasks and EnhanceNote.
func WithAssistant(a Assistant) Option {
	return func(s *appService) { s.assistant = a }
}

// WithRestorePolicy selects where orphaned todos are restored.
func WithRestorePolicy(p domain.RestorePolicy) Option {
	return func(s *appService) { s.policy = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *appService) { s.now = now }
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *appService) { s.newID = newID }
}

// WithLogger overrides the logger.
func WithLogger(l log.FieldLogger) Option {
	return func(s *appService) { s.logger = l }
}

// NewAppService creates the controller. Mutations are rejected with
// ErrNotLoaded until Load has run, so nothing is applied to state that Load
// would then replace.
func NewAppService(p Persister, opts ...Option) AppService {
	s := &appService{
		store:       p,
		policy:      domain.RestoreToFirst,
		now:         time.Now,
		newID:       uuid.NewString,
		logger:      log.StandardLogger(),
		generations: make(map[string]uint64),
		state: AppState{
			Notes:        []domain.Note{},
			Categories:   []domain.Category{},
			DeletedTasks: []domain.DeletedTodoItem{},
			Preferences:  domain.DefaultPreferences(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *appService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return
	}
	snap := s.store.Load(ctx)
	s.state = AppState{
		Notes:        snap.Notes,
		Categories:   snap.Categories,
		DeletedTasks: snap.DeletedTasks,
		Preferences:  snap.Preferences,
	}
	s.loaded = true
	s.logger.WithFields(log.Fields{
		"notes":      len(snap.Notes),
		"categories": len(snap.Categories),
		"trash":      len(snap.DeletedTasks),
	}).Info("Application state loaded")
}

func (s *appService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *appService) nowMillis() int64 {
	return s.now().UnixMilli()
}

// ready gates mutations on Load. Callers hold s.mu.
func (s *appService) ready() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// persist writes the changed collections. Callers hold s.mu, so saves are
// applied in commit order.
func (s *appService) persist(ctx context.Context, changed slot) {
	ctx = context.WithoutCancel(ctx)
	if changed&slotNotes != 0 {
		s.store.SaveNotes(ctx, s.state.Notes)
	}
	if changed&slotCategories != 0 {
		s.store.SaveCategories(ctx, s.state.Categories)
	}
	if changed&slotDeletedTasks != 0 {
		s.store.SaveDeletedTasks(ctx, s.state.DeletedTasks)
	}
	if changed&slotPreferences != 0 {
		s.store.SavePreferences(ctx, s.state.Preferences)
	}
}
