package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "github.com/taskhive/task-service/internal/errors"
	"github.com/taskhive/task-service/internal/task/domain"
	repo "github.com/taskhive/task-service/internal/task/repository/postgres"
)

var taskColumns = []string{
	"id", "title", "description", "status", "due_date",
	"user_id", "category_id", "created_at", "updated_at",
}

func TestCreateCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	category := &domain.Category{Name: "work", UserID: "user-123", CreatedAt: time.Now()}

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs(category.Name, category.UserID, category.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	require.NoError(t, r.CreateCategory(ctx, category))
	assert.Equal(t, int64(7), category.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery("SELECT id, name, user_id, created_at").
		WithArgs("user-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "user_id", "created_at"}).
			AddRow(int64(1), "work", "user-123", time.Now()).
			AddRow(int64(2), "home", "user-123", time.Now()))

	categories, err := r.ListCategories(ctx, "user-123")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "work", categories[0].Name)
	assert.Equal(t, "home", categories[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	now := time.Now()
	task := &domain.Task{
		Title:     "write report",
		Status:    "pending",
		UserID:    "user-123",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(task.Title, task.Description, task.Status, task.DueDate,
			task.UserID, task.CategoryID, task.CreatedAt, task.UpdatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, r.CreateTask(ctx, task))
	assert.Equal(t, int64(42), task.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasks(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()
	now := time.Now()

	t.Run("no filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, title").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow(int64(1), "a", "", "pending", nil, "user-123", nil, now, now))

		tasks, err := r.ListTasks(ctx, "user-123", domain.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "a", tasks[0].Title)
	})

	t.Run("status and category filter", func(t *testing.T) {
		catID := int64(3)
		mock.ExpectQuery("SELECT id, title").
			WithArgs("user-123", "done", int64(3)).
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow(int64(2), "b", "", "done", nil, "user-123", &catID, now, now))

		tasks, err := r.ListTasks(ctx, "user-123", domain.TaskFilter{Status: "done", CategoryID: 3})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "done", tasks[0].Status)
		require.NotNil(t, tasks[0].CategoryID)
		assert.Equal(t, int64(3), *tasks[0].CategoryID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, title").
			WithArgs(int64(1), "user-123").
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow(int64(1), "a", "", "pending", nil, "user-123", nil, now, now))

		task, err := r.GetTask(ctx, 1, "user-123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), task.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, title").
			WithArgs(int64(1), "other-user").
			WillReturnError(pgx.ErrNoRows)

		task, err := r.GetTask(ctx, 1, "other-user")
		require.NoError(t, err)
		assert.Nil(t, task)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(int64(1), "user-123").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		deleted, err := r.DeleteTask(ctx, 1, "user-123")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("no matching row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(int64(1), "other-user").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		deleted, err := r.DeleteTask(ctx, 1, "other-user")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(int64(1), "user-123").
			WillReturnError(errors.New("connection refused"))

		_, err := r.DeleteTask(ctx, 1, "user-123")
		assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
