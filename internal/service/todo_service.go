package service

import (
	"context"

	"github.com/charmbracelet/log"

	"todoapi/internal/domain"
	"todoapi/internal/repository"
)

// CreateTodoRequest holds the data needed to create a new todo.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Saver persists the full store state after a mutation. The file driver
// plugs the snapshot gateway in here; drivers with their own durability
// pass nil.
type Saver interface {
	Save() error
}

// TodoService contains the business operations for managing todos.
type TodoService interface {
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	GetTodo(ctx context.Context, id uint64) (*domain.Todo, error)
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, id uint64, patch domain.TodoPatch) (*domain.Todo, error)
	ToggleTodo(ctx context.Context, id uint64) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id uint64) (*domain.Todo, error)
	DeleteCompleted(ctx context.Context) (int64, error)
	CountTodos(ctx context.Context) (int64, error)
}

type todoService struct {
	repo  repository.TodoRepository
	saver Saver
}

// NewTodoService creates a todo service over the given repository.
// saver may be nil when the repository handles its own durability.
func NewTodoService(repo repository.TodoRepository, saver Saver) TodoService {
	return &todoService{repo: repo, saver: saver}
}

// persist writes the snapshot after a successful mutation. Failures are
// logged and swallowed: the in-memory state stays authoritative for the
// response, at the cost of losing the mutation if the process dies before
// the next successful save.
func (s *todoService) persist() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(); err != nil {
		log.Error("snapshot save failed, in-memory state kept", "err", err)
	}
}

func (s *todoService) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	return s.repo.List()
}

func (s *todoService) GetTodo(ctx context.Context, id uint64) (*domain.Todo, error) {
	return s.repo.Get(id)
}

func (s *todoService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*domain.Todo, error) {
	if req.Title == "" {
		return nil, &domain.ValidationError{Field: "Title"}
	}

	todo, err := s.repo.Create(req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	s.persist()
	return todo, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, id uint64, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.persist()
	return todo, nil
}

func (s *todoService) ToggleTodo(ctx context.Context, id uint64) (*domain.Todo, error) {
	todo, err := s.repo.Toggle(id)
	if err != nil {
		return nil, err
	}
	s.persist()
	return todo, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id uint64) (*domain.Todo, error) {
	todo, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	s.persist()
	return todo, nil
}

func (s *todoService) DeleteCompleted(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteCompleted()
	if err != nil {
		return 0, err
	}
	s.persist()
	return removed, nil
}

func (s *todoService) CountTodos(ctx context.Context) (int64, error) {
	return s.repo.Count()
}
