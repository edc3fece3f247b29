package ports

import (
	"context"

	"github.com/appservers/customer-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
// The service layer clamps Page and Limit before they reach a repository.
type ListUsersFilter struct {
	Search string // optional: case-insensitive substring match on name or email
	Page   int    // 1-based
	Limit  int    // rows per page
}

// UpdateUserFields is the partial-update set; nil means "leave unchanged".
type UpdateUserFields struct {
	Name     *string
	Email    *string
	Age      *int
	Phone    *string
	IsActive *bool
}

// UserRepository defines persistence operations for users. Implementations
// must bind every user-supplied value as a query parameter; the values come
// from untrusted input.
type UserRepository interface {
	// Create inserts the user and fills in ID, CreatedAt and UpdatedAt.
	// Returns domain.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail performs an exact match on the normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns one page ordered by creation time descending, plus the
	// total number of matching rows independent of page size.
	List(ctx context.Context, f ListUsersFilter) ([]*domain.User, int64, error)
	// Update applies the non-nil fields, refreshes updated_at, and returns
	// the updated record.
	Update(ctx context.Context, id int64, fields UpdateUserFields) (*domain.User, error)
	// Delete removes the record permanently.
	Delete(ctx context.Context, id int64) error
}
