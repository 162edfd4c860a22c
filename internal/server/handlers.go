package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/taskflow/internal/calendar"
	"github.com/Tomlord1122/taskflow/internal/service"
)

// --- Notes ---

func (s *Server) listNotesHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.app.ListNotes(r.Context()))
}

func (s *Server) createNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNoteRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	note, err := s.app.CreateNote(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "create note")
		return
	}
	respondWithJSON(w, http.StatusCreated, note)
}

func (s *Server) getNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := s.app.GetNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err, "retrieve note")
		return
	}
	respondWithJSON(w, http.StatusOK, note)
}

func (s *Server) updateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateNoteRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	note, err := s.app.UpdateNote(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithServiceError(w, err, "update note")
		return
	}
	respondWithJSON(w, http.StatusOK, note)
}

func (s *Server) deleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.app.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err, "delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) enhanceNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := s.app.EnhanceNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err, "enhance note")
		return
	}
	respondWithJSON(w, http.StatusOK, note)
}

// --- Categories and todos ---

func (s *Server) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.app.ListCategories(r.Context()))
}

func (s *Server) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	cat, err := s.app.CreateCategory(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "create category")
		return
	}
	respondWithJSON(w, http.StatusCreated, cat)
}

func (s *Server) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
	cat, err := s.app.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err, "retrieve category")
		return
	}
	respondWithJSON(w, http.StatusOK, cat)
}

func (s *Server) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.app.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err, "delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) suggestTasksHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.app.SuggestTasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err, "suggest tasks")
		return
	}
	respondWithJSON(w, http.StatusCreated, todos)
}

func (s *Server) addTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	todo, err := s.app.AddTodo(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithServiceError(w, err, "add todo")
		return
	}
	respondWithJSON(w, http.StatusCreated, todo)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTodoRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	todo, err := s.app.UpdateTodo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "todoID"), req)
	if err != nil {
		respondWithServiceError(w, err, "update todo")
		return
	}
	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) toggleTodoHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := s.app.ToggleTodo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "todoID"))
	if err != nil {
		respondWithServiceError(w, err, "toggle todo")
		return
	}
	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.app.DeleteTodo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "todoID")); err != nil {
		respondWithServiceError(w, err, "delete todo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) calendarLinkHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := s.app.GetTodo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "todoID"))
	if err != nil {
		respondWithServiceError(w, err, "build calendar link")
		return
	}
	if todo.Reminder == nil {
		respondWithError(w, http.StatusBadRequest, "todo has no reminder")
		return
	}
	link := calendar.EventURL(todo.Text, time.UnixMilli(*todo.Reminder))
	respondWithJSON(w, http.StatusOK, map[string]string{"url": link})
}

// --- Trash ---

func (s *Server) trashHandler(w http.ResponseWriter, r *http.Request) {
	trash := s.app.Trash(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]any{
		"notes": trash.Notes,
		"tasks": trash.Tasks,
		"count": trash.Count(),
	})
}

func (s *Server) restoreNoteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.app.RestoreNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err, "restore note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) purgeNoteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.app.PurgeNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err, "purge note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) restoreTaskHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := s.app.RestoreTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err, "restore task")
		return
	}
	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) purgeTaskHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.app.PurgeTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err, "purge task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Preferences ---

func (s *Server) preferencesHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.app.Preferences(r.Context()))
}

func (s *Server) toggleDarkModeHandler(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.app.ToggleDarkMode(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "toggle dark mode")
		return
	}
	respondWithJSON(w, http.StatusOK, prefs)
}

func (s *Server) setPaletteHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SetPaletteRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	prefs, err := s.app.SetPalette(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "set palette")
		return
	}
	respondWithJSON(w, http.StatusOK, prefs)
}
