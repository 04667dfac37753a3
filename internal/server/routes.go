package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"todoapi/internal/domain"
	"todoapi/internal/service"
)

// envelope is the uniform response wrapper for every /api endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

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

	r.Get("/", s.rootHandler)
	r.Get("/health", s.healthHandler)

	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", s.listTodosHandler)
		r.Post("/", s.createTodoHandler)
		r.Delete("/completed/all", s.deleteCompletedHandler)
		r.Get("/{id}", s.getTodoHandler)
		r.Put("/{id}", s.updateTodoHandler)
		r.Patch("/{id}/toggle", s.toggleTodoHandler)
		r.Delete("/{id}", s.deleteTodoHandler)
	})

	return r
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Todo API"})
}

// healthHandler reports liveness and the current todo count. It never
// touches the snapshot file.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.todoService.CountTodos(r.Context())
	if err != nil {
		log.Error("health count failed", "err", err)
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "down"})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"status": "ok", "todos": count})
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todoService.ListTodos(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	respondWithData(w, http.StatusOK, todos)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := s.todoService.GetTodo(r.Context(), todoID(r))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, todo)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := s.todoService.CreateTodo(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, todo)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	var patch domain.TodoPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	todo, err := s.todoService.UpdateTodo(r.Context(), todoID(r), patch)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, todo)
}

func (s *Server) toggleTodoHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := s.todoService.ToggleTodo(r.Context(), todoID(r))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, todo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	todo, err := s.todoService.DeleteTodo(r.Context(), todoID(r))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, todo)
}

func (s *Server) deleteCompletedHandler(w http.ResponseWriter, r *http.Request) {
	removed, err := s.todoService.DeleteCompleted(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, fmt.Sprintf("Deleted %d completed todos", removed))
}

// todoID parses the id route parameter. Non-numeric input parses to 0,
// which never matches a stored todo (ids start at 1), so the lookup
// answers 404 rather than 400.
func todoID(r *http.Request) uint64 {
	id, _ := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return id
}

// decodeBody parses a JSON request body. An empty body decodes to the
// zero value of dst; malformed JSON answers 400. Returns false if a
// response was already written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondWithError(w, http.StatusBadRequest, "Invalid request body")
	return false
}

func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Todo not found")
	default:
		log.Error("todo operation failed", "err", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondWithData(w http.ResponseWriter, code int, data any) {
	respondWithJSON(w, code, envelope{Success: true, Data: data})
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, envelope{Success: true, Message: message})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, envelope{Success: false, Message: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error("marshal JSON response", "err", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
