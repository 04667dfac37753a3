package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"todoapi/internal/domain"
)

// newTestDB starts a throwaway postgres container and opens a migrated
// GORM connection to it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("todos_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Todo{}))
	return db
}

func TestGormTodoRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	repo := NewGormTodoRepository(newTestDB(t))

	first, err := repo.Create("Buy milk", "two liters")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.Completed)

	second, err := repo.Create("Walk dog", "")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "two liters", got.Description)

	_, err = repo.Get(first.ID + 1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	title := "Buy oat milk"
	updated, err := repo.Update(first.ID, domain.TodoPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Equal(t, "two liters", updated.Description)

	toggled, err := repo.Toggle(first.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	todos, err := repo.List()
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, first.ID, todos[0].ID)

	removed, err := repo.DeleteCompleted()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	deleted, err := repo.Delete(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walk dog", deleted.Title)

	_, err = repo.Delete(second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
