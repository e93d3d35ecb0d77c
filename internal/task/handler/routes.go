package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the category and task routes behind the given auth
// middleware.
func RegisterRoutes(app *fiber.App, h *TaskHandler, requireAuth fiber.Handler) {
	app.Post("/categories", requireAuth, h.CreateCategory)
	app.Get("/categories", requireAuth, h.ListCategories)

	app.Post("/tasks", requireAuth, h.CreateTask)
	app.Get("/tasks", requireAuth, h.ListTasks)
	app.Get("/tasks/:id", requireAuth, h.GetTask)
	app.Put("/tasks/:id", requireAuth, h.UpdateTask)
	app.Delete("/tasks/:id", requireAuth, h.DeleteTask)
}
