package domain

import (
	"errors"
	"fmt"
	"time"
)

// Todo is the single entity managed by this service.
type Todo struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Snapshot is the full persisted state of the store: every todo in
// insertion order plus the next id to issue.
type Snapshot struct {
	Todos  []Todo `json:"todos"`
	NextID uint64 `json:"nextId"`
}

// TodoPatch is a partial update. Pointer fields distinguish a field that
// was omitted from one explicitly set to its zero value.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ErrNotFound is returned when no todo exists with the requested id.
var ErrNotFound = errors.New("todo not found")

// ValidationError reports a missing required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
