package repository

import (
	"sync"
	"time"

	"todoapi/internal/domain"
)

// MemoryRepository is the default storage driver: an ordered in-memory
// collection plus a monotonic id counter. It is the authoritative state;
// durability comes from snapshotting it to disk after each mutation.
//
// The mutex makes each operation atomic under net/http's concurrent
// handlers. Ids are never reused within a process lifetime, even after
// deletes.
type MemoryRepository struct {
	mu     sync.Mutex
	todos  []domain.Todo
	nextID uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

// State returns a copy of the full store state for persistence.
func (r *MemoryRepository) State() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos := make([]domain.Todo, len(r.todos))
	copy(todos, r.todos)
	return domain.Snapshot{Todos: todos, NextID: r.nextID}
}

// Restore replaces the store state with a loaded snapshot.
func (r *MemoryRepository) Restore(snap domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos = make([]domain.Todo, len(snap.Todos))
	copy(r.todos, snap.Todos)
	r.nextID = snap.NextID
	if r.nextID < 1 {
		r.nextID = 1
	}
}

func (r *MemoryRepository) List() ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos := make([]domain.Todo, len(r.todos))
	copy(todos, r.todos)
	return todos, nil
}

func (r *MemoryRepository) Get(id uint64) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	todo := r.todos[i]
	return &todo, nil
}

func (r *MemoryRepository) Create(title, description string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	todo := domain.Todo{
		ID:          r.nextID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.todos = append(r.todos, todo)
	return &todo, nil
}

func (r *MemoryRepository) Update(id uint64, patch domain.TodoPatch) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	todo := &r.todos[i]
	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	todo.UpdatedAt = time.Now().UTC()

	updated := *todo
	return &updated, nil
}

func (r *MemoryRepository) Toggle(id uint64) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	todo := &r.todos[i]
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now().UTC()

	toggled := *todo
	return &toggled, nil
}

func (r *MemoryRepository) Delete(id uint64) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	deleted := r.todos[i]
	r.todos = append(r.todos[:i], r.todos[i+1:]...)
	return &deleted, nil
}

func (r *MemoryRepository) DeleteCompleted() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.todos[:0]
	var removed int64
	for _, todo := range r.todos {
		if todo.Completed {
			removed++
			continue
		}
		kept = append(kept, todo)
	}
	r.todos = kept
	return removed, nil
}

func (r *MemoryRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.todos)), nil
}

// indexOf must be called with the mutex held.
func (r *MemoryRepository) indexOf(id uint64) int {
	for i := range r.todos {
		if r.todos[i].ID == id {
			return i
		}
	}
	return -1
}
