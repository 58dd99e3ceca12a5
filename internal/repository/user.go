package repository

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
)

type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
