package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/usecase"
)

type fakeTaskRepo struct {
	create  func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	getByID func(ctx context.Context, taskID, userID string) (*domain.Task, error)
	list    func(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error)
	update  func(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error)
	delete  func(ctx context.Context, taskID, userID string) error
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return r.create(ctx, task)
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	return r.getByID(ctx, taskID, userID)
}

func (r *fakeTaskRepo) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	return r.list(ctx, input)
}

func (r *fakeTaskRepo) Update(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error) {
	return r.update(ctx, taskID, userID, input)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, taskID, userID string) error {
	return r.delete(ctx, taskID, userID)
}

func TestCreateTask_DefaultsStatusAndPriority(t *testing.T) {
	var captured *domain.Task
	repo := &fakeTaskRepo{
		create: func(_ context.Context, task *domain.Task) (*domain.Task, error) {
			captured = task
			return task, nil
		},
	}

	_, err := usecase.NewTaskUsecase(repo).CreateTask(context.Background(), usecase.CreateTaskInput{
		UserID: "user-1",
		Title:  "Buy milk",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", captured.Status)
	}
	if captured.Priority != domain.PriorityMedium {
		t.Errorf("priority = %s, want medium", captured.Priority)
	}
}

func TestCreateTask_KeepsExplicitValues(t *testing.T) {
	var captured *domain.Task
	repo := &fakeTaskRepo{
		create: func(_ context.Context, task *domain.Task) (*domain.Task, error) {
			captured = task
			return task, nil
		},
	}

	_, err := usecase.NewTaskUsecase(repo).CreateTask(context.Background(), usecase.CreateTaskInput{
		UserID:      "user-1",
		Title:       "Write report",
		Description: "quarterly numbers",
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Status != domain.StatusInProgress || captured.Priority != domain.PriorityHigh {
		t.Errorf("got %s/%s, want in_progress/high", captured.Status, captured.Priority)
	}
	if captured.UserID != "user-1" {
		t.Errorf("user id = %s, want user-1", captured.UserID)
	}
}

func TestGetTask_NotFoundSurvivesWrapping(t *testing.T) {
	repo := &fakeTaskRepo{
		getByID: func(_ context.Context, _, _ string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}

	_, err := usecase.NewTaskUsecase(repo).GetTask(context.Background(), "task-1", "user-1")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestListTasks_PassesFiltersThrough(t *testing.T) {
	var captured repository.ListTasksInput
	repo := &fakeTaskRepo{
		list: func(_ context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
			captured = input
			return nil, nil
		},
	}

	_, err := usecase.NewTaskUsecase(repo).ListTasks(context.Background(), usecase.ListTasksInput{
		UserID:   "user-1",
		Status:   domain.StatusPending,
		Priority: domain.PriorityHigh,
		Search:   "milk",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := repository.ListTasksInput{
		UserID: "user-1", Status: domain.StatusPending,
		Priority: domain.PriorityHigh, Search: "milk",
	}
	if captured != want {
		t.Errorf("repo input = %+v, want %+v", captured, want)
	}
}

func TestUpdateTask_NotFoundSurvivesWrapping(t *testing.T) {
	repo := &fakeTaskRepo{
		update: func(_ context.Context, _, _ string, _ repository.UpdateTaskInput) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}

	_, err := usecase.NewTaskUsecase(repo).UpdateTask(context.Background(), "task-1", "user-1", usecase.UpdateTaskInput{})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask_NotFoundSurvivesWrapping(t *testing.T) {
	repo := &fakeTaskRepo{
		delete: func(_ context.Context, _, _ string) error {
			return domain.ErrTaskNotFound
		},
	}

	err := usecase.NewTaskUsecase(repo).DeleteTask(context.Background(), "task-1", "user-1")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}
