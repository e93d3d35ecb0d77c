package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/taskhive/task-service/internal/auth/handler"
	apperror "github.com/taskhive/task-service/internal/errors"
	"github.com/taskhive/task-service/internal/task/domain"
	"github.com/taskhive/task-service/internal/task/dto"
	"github.com/taskhive/task-service/internal/task/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateCategory(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	var input dto.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	category, err := h.taskService.CreateCategory(c.UserContext(), user.ID, input)
	if err != nil {
		return mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CategoryOutput{
		ID:        category.ID,
		Name:      category.Name,
		UserID:    category.UserID,
		CreatedAt: category.CreatedAt,
	})
}

func (h *TaskHandler) ListCategories(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	categories, err := h.taskService.ListCategories(c.UserContext(), user.ID)
	if err != nil {
		return mapError(c, err)
	}

	out := make([]dto.CategoryOutput, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.CategoryOutput{
			ID:        category.ID,
			Name:      category.Name,
			UserID:    category.UserID,
			CreatedAt: category.CreatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	var input dto.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	task, err := h.taskService.CreateTask(c.UserContext(), user.ID, input)
	if err != nil {
		return mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(taskOutput(task))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	filter := domain.TaskFilter{Status: c.Query("status")}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category_id"})
		}
		filter.CategoryID = categoryID
	}

	tasks, err := h.taskService.ListTasks(c.UserContext(), user.ID, filter)
	if err != nil {
		return mapError(c, err)
	}

	out := make([]dto.TaskOutput, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskOutput(&tasks[i]))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	id, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid task id"})
	}

	task, err := h.taskService.GetTask(c.UserContext(), id, user.ID)
	if err != nil {
		return mapError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(taskOutput(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	id, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid task id"})
	}

	var input dto.TaskUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	task, err := h.taskService.UpdateTask(c.UserContext(), id, user.ID, input)
	if err != nil {
		return mapError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(taskOutput(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	id, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid task id"})
	}

	if err := h.taskService.DeleteTask(c.UserContext(), id, user.ID); err != nil {
		return mapError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "task deleted"})
}

func parseTaskID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func taskOutput(task *domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		UserID:      task.UserID,
		CategoryID:  task.CategoryID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func mapError(c *fiber.Ctx, err error) error {
	var vErr *apperror.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
	case errors.Is(err, apperror.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "task not found"})
	case errors.Is(err, apperror.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service unavailable"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
