package taskHandler

import (
	taskService "AssistantGolang/internal/api/task/service"
	"AssistantGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TaskHandler struct {
	log         *logrus.Logger
	taskService taskService.ITaskService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	ts taskService.ITaskService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *TaskHandler {
	return &TaskHandler{
		log:         log,
		taskService: ts,
		validator:   validate,
		middleware:  middleware,
	}
}

func (h *TaskHandler) Start(srv fiber.Router) {
	tasks := srv.Group("/tasks", h.middleware.NewTokenMiddleware)
	tasks.Post("/", h.HandleCreateTask)
	tasks.Get("/", h.HandleListTasks)
	tasks.Get("/stats", h.HandleTaskStats)
	tasks.Get("/:id", h.HandleGetTask)
	tasks.Get("/:id/activities", h.HandleListActivities)
	tasks.Patch("/:id", h.HandleUpdateTask)
	tasks.Patch("/:id/status", h.HandleUpdateTaskStatus)
	tasks.Delete("/:id", h.HandleDeleteTask)
}
