package repository

import "todoapi/internal/domain"

// TodoRepository defines the operations every storage driver supports.
// Lookups by an id that was never issued return domain.ErrNotFound.
type TodoRepository interface {
	// List returns every todo in insertion order.
	List() ([]domain.Todo, error)

	// Get returns the todo with the given id.
	Get(id uint64) (*domain.Todo, error)

	// Create appends a new todo with a fresh id, completed=false and both
	// timestamps set to now.
	Create(title, description string) (*domain.Todo, error)

	// Update overwrites the fields present in the patch and refreshes
	// UpdatedAt, whether or not any field actually changed.
	Update(id uint64, patch domain.TodoPatch) (*domain.Todo, error)

	// Toggle flips the completed flag and refreshes UpdatedAt.
	Toggle(id uint64) (*domain.Todo, error)

	// Delete removes the todo and returns it.
	Delete(id uint64) (*domain.Todo, error)

	// DeleteCompleted removes every completed todo and returns how many
	// were removed.
	DeleteCompleted() (int64, error)

	// Count returns the number of stored todos.
	Count() (int64, error)
}
