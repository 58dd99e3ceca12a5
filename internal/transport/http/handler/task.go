package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/usecase"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error)
	ListTasks(ctx context.Context, input usecase.ListTasksInput) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, taskID, userID string, input usecase.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string          `json:"title"       binding:"required,max=200"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
	Status      domain.Status   `json:"status"      binding:"omitempty,oneof=pending in_progress completed"`
	Priority    domain.Priority `json:"priority"    binding:"omitempty,oneof=low medium high"`
}

// All fields optional; an empty body is a valid no-op update.
type updateTaskRequest struct {
	Title       *string          `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Status      *domain.Status   `json:"status"      binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *domain.Priority `json:"priority"    binding:"omitempty,oneof=low medium high"`
}

type listTasksQuery struct {
	Status   domain.Status   `form:"status"   binding:"omitempty,oneof=pending in_progress completed"`
	Priority domain.Priority `form:"priority" binding:"omitempty,oneof=low medium high"`
	Search   string          `form:"search"   binding:"omitempty,max=200"`
}

type taskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err)
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	var query listTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortValidation(c, err)
		return
	}

	tasks, err := h.taskUsecase.ListTasks(c.Request.Context(), usecase.ListTasksInput{
		UserID:   c.GetString("userID"),
		Status:   query.Status,
		Priority: query.Priority,
		Search:   query.Search,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.taskUsecase.GetTask(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")

	// An absent body is treated like {}: a no-op update.
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortValidation(c, err)
		return
	}

	// omitempty skips rules for a present-but-empty string, so an explicit
	// `"title": ""` needs its own check; blanking the title is not allowed.
	if req.Title != nil && *req.Title == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, validationResponse{
			Message: "Validation failed",
			Errors:  []fieldError{{Field: "title", Message: "must not be empty"}},
		})
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), taskID, c.GetString("userID"), usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")

	err := h.taskUsecase.DeleteTask(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}
