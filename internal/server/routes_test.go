package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Tomlord1122/taskflow/internal/domain"
	"github.com/Tomlord1122/taskflow/internal/repository"
	"github.com/Tomlord1122/taskflow/internal/service"
	"github.com/Tomlord1122/taskflow/internal/store"
)

type staticHealth map[string]string

func (h staticHealth) Health() map[string]string { return h }

func newTestHandler(t *testing.T, health map[string]string) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	clock := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	st := store.New(repository.NewMemorySlotRepository(nil), store.WithClock(clock), store.WithLogger(logger))
	app := service.NewAppService(st, service.WithClock(clock), service.WithLogger(logger))
	app.Load(context.Background())

	assets := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("asset:" + r.URL.Path))
	})
	s := &Server{app: app, health: staticHealth(health), assets: assets}
	return s.RegisterRoutes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t, map[string]string{"status": "up"})
	if rec := do(t, h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	h = newTestHandler(t, map[string]string{"status": "down"})
	if rec := do(t, h, http.MethodGet, "/health", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestTodoTrashRoundTrip(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h, http.MethodPost, "/categories", `{"name":"Groceries"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: %d %s", rec.Code, rec.Body)
	}
	cat := decode[service.CategoryResponse](t, rec)

	rec = do(t, h, http.MethodPost, "/categories/"+cat.ID+"/todos", `{"text":"Milk"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add todo: %d %s", rec.Code, rec.Body)
	}
	todo := decode[domain.TodoItem](t, rec)

	if rec = do(t, h, http.MethodDelete, "/categories/"+cat.ID+"/todos/"+todo.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete todo: %d %s", rec.Code, rec.Body)
	}
	if rec = do(t, h, http.MethodDelete, "/categories/"+cat.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete category: %d %s", rec.Code, rec.Body)
	}

	trash := decode[struct {
		Tasks []domain.DeletedTodoItem `json:"tasks"`
		Count int                      `json:"count"`
	}](t, do(t, h, http.MethodGet, "/trash", ""))
	if trash.Count != 1 || trash.Tasks[0].OriginalCategoryID != cat.ID {
		t.Fatalf("unexpected trash %+v", trash)
	}

	if rec = do(t, h, http.MethodPost, "/trash/tasks/"+todo.ID+"/restore", ""); rec.Code != http.StatusOK {
		t.Fatalf("restore: %d %s", rec.Code, rec.Body)
	}
	cats := decode[[]service.CategoryResponse](t, do(t, h, http.MethodGet, "/categories", ""))
	if len(cats) != 1 || cats[0].Todos[0].Text != "Milk" {
		t.Fatalf("expected milk in first category, got %+v", cats)
	}

	if rec = do(t, h, http.MethodPost, "/trash/tasks/"+todo.ID+"/restore", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second restore, got %d", rec.Code)
	}
	if rec = do(t, h, http.MethodDelete, "/trash/tasks/"+todo.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("purge of unknown id must succeed, got %d", rec.Code)
	}
}

func TestRequestValidation(t *testing.T) {
	h := newTestHandler(t, nil)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"bad json", http.MethodPost, "/categories", `{"name":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/categories", `{"title":"x"}`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/categories", "", http.StatusBadRequest},
		{"blank name", http.MethodPost, "/categories", `{"name":"  "}`, http.StatusBadRequest},
		{"wrong type", http.MethodPost, "/categories/default-cat/todos", `{"text":5}`, http.StatusBadRequest},
		{"unknown category", http.MethodPost, "/categories/nope/todos", `{"text":"x"}`, http.StatusNotFound},
		{"unknown palette", http.MethodPut, "/preferences/palette", `{"palette":"neon"}`, http.StatusBadRequest},
		{"assist unavailable", http.MethodPost, "/categories/default-cat/suggest", "", http.StatusServiceUnavailable},
		{"no reminder", http.MethodGet, "/categories/default-cat/todos/t1/calendar", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := do(t, h, tc.method, tc.target, tc.body); rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body)
			}
		})
	}
}

func TestNotesEndpoints(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h, http.MethodPost, "/notes", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create with empty body: %d %s", rec.Code, rec.Body)
	}
	note := decode[domain.Note](t, rec)
	if note.Title != domain.DefaultNoteTitle {
		t.Fatalf("expected default title, got %q", note.Title)
	}

	rec = do(t, h, http.MethodPatch, "/notes/"+note.ID, `{"content":"hello"}`)
	if got := decode[domain.Note](t, rec); got.Content != "hello" {
		t.Fatalf("expected updated content, got %+v", got)
	}

	do(t, h, http.MethodDelete, "/notes/"+note.ID, "")
	notes := decode[[]domain.Note](t, do(t, h, http.MethodGet, "/notes", ""))
	if len(notes) != 1 {
		t.Fatalf("expected only the welcome note active, got %+v", notes)
	}
	if rec = do(t, h, http.MethodPost, "/trash/notes/"+note.ID+"/restore", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("restore note: %d", rec.Code)
	}
	if rec = do(t, h, http.MethodGet, "/notes/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPurgeLeavesActiveNote(t *testing.T) {
	h := newTestHandler(t, nil)

	if rec := do(t, h, http.MethodDelete, "/trash/notes/"+domain.WelcomeNoteID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("purge active note: %d %s", rec.Code, rec.Body)
	}
	if rec := do(t, h, http.MethodGet, "/notes/"+domain.WelcomeNoteID, ""); rec.Code != http.StatusOK {
		t.Fatalf("active note must survive purge, got %d", rec.Code)
	}
	notes := decode[[]domain.Note](t, do(t, h, http.MethodGet, "/notes", ""))
	if len(notes) != 1 || notes[0].ID != domain.WelcomeNoteID {
		t.Fatalf("expected welcome note listed, got %+v", notes)
	}

	do(t, h, http.MethodDelete, "/notes/"+domain.WelcomeNoteID, "")
	if rec := do(t, h, http.MethodDelete, "/trash/notes/"+domain.WelcomeNoteID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("purge trashed note: %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/notes/"+domain.WelcomeNoteID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected purged note gone, got %d", rec.Code)
	}
}

func TestMutationsBeforeLoadUnavailable(t *testing.T) {
	logger, _ := test.NewNullLogger()
	st := store.New(repository.NewMemorySlotRepository(nil), store.WithLogger(logger))
	app := service.NewAppService(st, service.WithLogger(logger))
	h := (&Server{app: app, health: staticHealth(nil)}).RegisterRoutes()

	if rec := do(t, h, http.MethodPost, "/notes", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before load, got %d %s", rec.Code, rec.Body)
	}
	if rec := do(t, h, http.MethodPost, "/preferences/dark-mode/toggle", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before load, got %d", rec.Code)
	}

	app.Load(context.Background())
	if rec := do(t, h, http.MethodPost, "/notes", ""); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 after load, got %d", rec.Code)
	}
}

func TestCalendarLink(t *testing.T) {
	h := newTestHandler(t, nil)

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC).UnixMilli()
	body := `{"reminder":` + jsonInt(at) + `}`
	if rec := do(t, h, http.MethodPatch, "/categories/default-cat/todos/t1", body); rec.Code != http.StatusOK {
		t.Fatalf("set reminder: %d %s", rec.Code, rec.Body)
	}
	rec := do(t, h, http.MethodGet, "/categories/default-cat/todos/t1/calendar", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("calendar: %d %s", rec.Code, rec.Body)
	}
	link := decode[map[string]string](t, rec)["url"]
	if !strings.Contains(link, "dates=20240301T093000Z%2F20240301T103000Z") {
		t.Fatalf("unexpected link %s", link)
	}
}

func TestPreferencesEndpoints(t *testing.T) {
	h := newTestHandler(t, nil)

	prefs := decode[domain.Preferences](t, do(t, h, http.MethodPost, "/preferences/dark-mode/toggle", ""))
	if !prefs.DarkMode {
		t.Fatalf("expected dark mode on")
	}
	prefs = decode[domain.Preferences](t, do(t, h, http.MethodPut, "/preferences/palette", `{"palette":"earth"}`))
	if prefs.Palette != domain.PaletteEarth || !prefs.DarkMode {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
}

func TestAssetsMountedUnderApp(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(t, h, http.MethodGet, "/app/index.html", "")
	if rec.Body.String() != "asset:/index.html" {
		t.Fatalf("expected prefix stripped, got %q", rec.Body.String())
	}
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
