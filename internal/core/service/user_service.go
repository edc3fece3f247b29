package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/appservers/customer-api/internal/api/metrics"
	"github.com/appservers/customer-api/internal/core/domain"
	"github.com/appservers/customer-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// UserService orchestrates user CRUD: normalization, pagination bounds, and
// one structured log line per mutation. It holds no cross-request state.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// ListUsers returns one page of users ordered by creation time descending.
// Page and limit are clamped to sane bounds; limit is capped at maxLimit.
func (s *UserService) ListUsers(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	users, total, err := s.repo.List(ctx, ports.ListUsersFilter{
		Search: strings.TrimSpace(input.Search),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListUsersResult{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetUserByEmail looks a user up by exact normalized email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// CreateUser normalizes name and email, then inserts. The users_email_key
// constraint is the source of truth for uniqueness; the FindByEmail pre-check
// only exists to answer the common case without surfacing a constraint
// violation, and losing that race still yields ErrDuplicateEmail from Create.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	u := &domain.User{
		Name:     domain.NormalizeName(input.Name),
		Email:    domain.NormalizeEmail(input.Email),
		Age:      input.Age,
		Phone:    input.Phone,
		IsActive: true,
	}

	if existing, err := s.repo.FindByEmail(ctx, u.Email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error().Err(err).Str("email", u.Email).Msg("failed to create user")
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().Int64("id", u.ID).Str("email", u.Email).Msg("user created")

	return u, nil
}

// UpdateUser applies partial-field semantics: only supplied fields change.
// Name and email are re-normalized; the repository refreshes updated_at and
// re-validates email uniqueness through the storage constraint.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	fields := ports.UpdateUserFields{
		Age:      input.Age,
		Phone:    input.Phone,
		IsActive: input.IsActive,
	}
	if input.Name != nil {
		name := domain.NormalizeName(*input.Name)
		fields.Name = &name
	}
	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		fields.Email = &email
	}

	u, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	metrics.UsersUpdatedTotal.Inc()
	s.logger.Info().Int64("id", id).Msg("user updated")

	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	s.logger.Info().Int64("id", id).Msg("user deleted")

	return nil
}
