package domain

import "context"

// TaskFilter narrows ListTasks. Zero values mean "no filter".
type TaskFilter struct {
	Status     string
	CategoryID int64
}

type TaskRepository interface {
	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context, userID string) ([]Category, error)

	CreateTask(ctx context.Context, task *Task) error
	ListTasks(ctx context.Context, userID string, filter TaskFilter) ([]Task, error)
	// GetTask scopes the lookup to userID; a task owned by someone else is
	// indistinguishable from a missing one.
	GetTask(ctx context.Context, id int64, userID string) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64, userID string) (bool, error)
}
