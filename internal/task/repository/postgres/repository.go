package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperror "github.com/taskhive/task-service/internal/errors"
	"github.com/taskhive/task-service/internal/task/domain"
)

// PgxPool is the subset of pgxpool.Pool the repository needs, so tests can
// substitute a pgxmock pool.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRepository struct {
	db PgxPool
}

func NewPostgresTaskRepository(db PgxPool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (name, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query, category.Name, category.UserID, category.CreatedAt).
		Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("%w: create category: %v", apperror.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT id, name, user_id, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", apperror.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan category: %v", apperror.ErrStoreUnavailable, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", apperror.ErrStoreUnavailable, err)
	}

	return categories, nil
}

func (r *PostgresRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, due_date, user_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		task.Title, task.Description, task.Status, task.DueDate,
		task.UserID, task.CategoryID, task.CreatedAt, task.UpdatedAt).
		Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("%w: create task: %v", apperror.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *PostgresRepository) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `
		SELECT id, title, description, status, due_date, user_id, category_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1`
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		query += " AND category_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY id;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", apperror.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate,
			&t.UserID, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scan task: %v", apperror.ErrStoreUnavailable, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", apperror.ErrStoreUnavailable, err)
	}

	return tasks, nil
}

func (r *PostgresRepository) GetTask(ctx context.Context, id int64, userID string) (*domain.Task, error) {
	query := `
		SELECT id, title, description, status, due_date, user_id, category_id, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id, userID)

	var t domain.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate,
		&t.UserID, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get task: %v", apperror.ErrStoreUnavailable, err)
	}

	return &t, nil
}

func (r *PostgresRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, due_date = $4, category_id = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8;
	`
	_, err := r.db.Exec(ctx, query,
		task.Title, task.Description, task.Status, task.DueDate,
		task.CategoryID, task.UpdatedAt, task.ID, task.UserID)
	if err != nil {
		return fmt.Errorf("%w: update task: %v", apperror.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, id int64, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("%w: delete task: %v", apperror.ErrStoreUnavailable, err)
	}

	return tag.RowsAffected() > 0, nil
}
