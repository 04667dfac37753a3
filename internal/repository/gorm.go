package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"todoapi/internal/domain"
)

// gormTodoRepository is the postgres storage driver. The database is its
// own durability, so no snapshot file is involved; ids come from the
// todos table sequence.
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a postgres-backed todo repository.
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) List() ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := r.db.Order("id").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *gormTodoRepository) Get(id uint64) (*domain.Todo, error) {
	var todo domain.Todo
	if err := r.db.First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) Create(title, description string) (*domain.Todo, error) {
	now := time.Now().UTC()
	todo := domain.Todo{
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.Create(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) Update(id uint64, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, err := r.Get(id)
	if err != nil {
		return nil, err
	}
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
	if err := r.db.Save(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *gormTodoRepository) Toggle(id uint64) (*domain.Todo, error) {
	todo, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now().UTC()
	if err := r.db.Save(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *gormTodoRepository) Delete(id uint64) (*domain.Todo, error) {
	todo, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&domain.Todo{}, id).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *gormTodoRepository) DeleteCompleted() (int64, error) {
	result := r.db.Where("completed = ?", true).Delete(&domain.Todo{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *gormTodoRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&domain.Todo{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
