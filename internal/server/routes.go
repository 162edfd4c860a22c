package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/service"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", s.listNotesHandler)
		r.Post("/", s.createNoteHandler)
		r.Get("/{id}", s.getNoteHandler)
		r.Patch("/{id}", s.updateNoteHandler)
		r.Delete("/{id}", s.deleteNoteHandler)
		r.Post("/{id}/enhance", s.enhanceNoteHandler)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.listCategoriesHandler)
		r.Post("/", s.createCategoryHandler)
		r.Get("/{id}", s.getCategoryHandler)
		r.Delete("/{id}", s.deleteCategoryHandler)
		r.Post("/{id}/suggest", s.suggestTasksHandler)

		r.Post("/{id}/todos", s.addTodoHandler)
		r.Patch("/{id}/todos/{todoID}", s.updateTodoHandler)
		r.Delete("/{id}/todos/{todoID}", s.deleteTodoHandler)
		r.Post("/{id}/todos/{todoID}/toggle", s.toggleTodoHandler)
		r.Get("/{id}/todos/{todoID}/calendar", s.calendarLinkHandler)
	})

	r.Route("/trash", func(r chi.Router) {
		r.Get("/", s.trashHandler)
		r.Post("/notes/{id}/restore", s.restoreNoteHandler)
		r.Delete("/notes/{id}", s.purgeNoteHandler)
		r.Post("/tasks/{id}/restore", s.restoreTaskHandler)
		r.Delete("/tasks/{id}", s.purgeTaskHandler)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/", s.preferencesHandler)
		r.Post("/dark-mode/toggle", s.toggleDarkModeHandler)
		r.Put("/palette", s.setPaletteHandler)
	})

	if s.assets != nil {
		r.Handle("/app/*", http.StripPrefix("/app", s.assets))
	}

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.health.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

// decodeJSON reads a single JSON object into dst and writes the 400 response
// itself when the body is rejected. An empty body is accepted when
// allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err == nil {
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
	case errors.Is(err, io.EOF):
		if allowEmpty {
			return true
		}
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	default:
		log.WithError(err).Error("Error decoding request body")
		respondWithError(w, http.StatusInternalServerError, "Error processing request")
	}
	return false
}

// respondWithServiceError maps controller errors to status codes. action
// completes the generic "Failed to ..." message of unexpected errors.
func respondWithServiceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStaleResult):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotLoaded), errors.Is(err, service.ErrAssistUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrAssistFailed):
		log.WithError(err).Warn("Assistant request failed")
		respondWithError(w, http.StatusBadGateway, "Failed to "+action)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		respondWithError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("Error marshaling JSON response")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
