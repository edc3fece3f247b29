package ports

import (
	"context"

	"github.com/appservers/customer-api/internal/core/domain"
)

// CreateUserInput carries validated, not-yet-normalized fields for a new user.
type CreateUserInput struct {
	Name  string
	Email string
	Age   *int
	Phone *string
}

// UpdateUserInput carries the partial field set for an update. Nil fields are
// left untouched; the handler guarantees at least one is set.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Age      *int
	Phone    *string
	IsActive *bool
}

// ListUsersInput carries all parameters for the list endpoint. Zero values
// fall back to service defaults.
type ListUsersInput struct {
	Page   int
	Limit  int
	Search string
}

// ListUsersResult is one page of users plus pagination metadata.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines use-case operations for users.
type UserService interface {
	ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
