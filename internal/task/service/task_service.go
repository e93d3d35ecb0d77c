package service

//go:generate mockgen -destination=../../mocks/mock_task_repository.go -package=mocks github.com/taskhive/task-service/internal/task/domain TaskRepository

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperror "github.com/taskhive/task-service/internal/errors"
	"github.com/taskhive/task-service/internal/task/domain"
	"github.com/taskhive/task-service/internal/task/dto"
)

type TaskService struct {
	repo domain.TaskRepository
}

func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) CreateCategory(ctx context.Context, userID string, input dto.CategoryInput) (*domain.Category, error) {
	if err := validation.Validate(input.Name, validation.Required); err != nil {
		return nil, apperror.NewValidationError("name: " + err.Error())
	}

	category := &domain.Category{
		Name:      input.Name,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *TaskService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input dto.TaskInput) (*domain.Task, error) {
	if err := validation.Validate(input.Title, validation.Required); err != nil {
		return nil, apperror.NewValidationError("title: " + err.Error())
	}

	status := input.Status
	if status == "" {
		status = domain.DefaultTaskStatus
	}

	now := time.Now()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     input.DueDate,
		UserID:      userID,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	return s.repo.ListTasks(ctx, userID, filter)
}

func (s *TaskService) GetTask(ctx context.Context, id int64, userID string) (*domain.Task, error) {
	task, err := s.repo.GetTask(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.ErrNotFound
	}

	return task, nil
}

// UpdateTask merges only the fields present in the input into the stored
// task. The lookup is owner-scoped, so another user's task id yields
// ErrNotFound.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, userID string, input dto.TaskUpdateInput) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.CategoryID != nil {
		task.CategoryID = input.CategoryID
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64, userID string) error {
	deleted, err := s.repo.DeleteTask(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.ErrNotFound
	}

	return nil
}
