package usecase

import (
	"context"
	"fmt"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (u *TaskUsecase) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

type ListTasksInput struct {
	UserID   string
	Status   domain.Status
	Priority domain.Priority
	Search   string
}

func (u *TaskUsecase) ListTasks(ctx context.Context, input ListTasksInput) ([]*domain.Task, error) {
	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID:   input.UserID,
		Status:   input.Status,
		Priority: input.Priority,
		Search:   input.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
}

// UpdateTask applies only the fields present in input. An input with no
// fields set returns the task unchanged.
func (u *TaskUsecase) UpdateTask(ctx context.Context, taskID, userID string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := u.repo.Update(ctx, taskID, userID, repository.UpdateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, taskID, userID string) error {
	if err := u.repo.Delete(ctx, taskID, userID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
