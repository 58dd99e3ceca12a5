package repository

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
)

type ListTasksInput struct {
	UserID   string
	Status   domain.Status   // empty = all statuses
	Priority domain.Priority // empty = all priorities
	Search   string          // case-insensitive substring over title+description
}

// Fields left nil are not touched by Update.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
}

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, taskID, userID string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, taskID, userID string) error
}
