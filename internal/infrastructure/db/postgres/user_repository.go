package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appservers/customer-api/internal/core/domain"
	"github.com/appservers/customer-api/internal/core/ports"
)

// uniqueEmailConstraint is the storage-level guarantee that closes the
// check-then-act race on email uniqueness.
const uniqueEmailConstraint = "users_email_key"

const userColumns = "id, name, email, age, phone, is_active, created_at, updated_at"

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         BIGSERIAL PRIMARY KEY,
    name       VARCHAR(100) NOT NULL,
    email      VARCHAR(255) NOT NULL,
    age        INTEGER,
    phone      VARCHAR(20),
    is_active  BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
    CONSTRAINT users_email_key UNIQUE (email)
);
CREATE INDEX IF NOT EXISTS users_name_idx      ON users (name);
CREATE INDEX IF NOT EXISTS users_is_active_idx ON users (is_active);
`

// UserRepository persists users in Postgres. Every user-supplied value is
// bound as a query parameter.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// EnsureSchema creates the users table and supporting indexes if missing.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, schema)
	return translateErr(err)
}

// Create inserts a new user row. ID and timestamps come back from the
// database so the caller sees exactly what was stored.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, age, phone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.Age, u.Phone, u.IsActive,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns), id)
	return scanUser(row)
}

// FindByEmail performs an exact match; callers pass normalized emails.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns), email)
	return scanUser(row)
}

// List returns one page ordered by created_at descending plus the total
// matching count. A non-empty search term filters rows whose name or email
// contains the term, case-insensitively.
func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where := ""
	args := []any{}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = "WHERE name ILIKE $1 OR email ILIKE $1"
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT count(*) FROM users %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf(
		"SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, f.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, f.Limit)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, translateErr(err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateErr(err)
	}

	return users, total, nil
}

// Update applies the non-nil fields and refreshes updated_at in one
// statement. Column names are code-controlled; only values are interpolated
// through parameters. Changing the email to one already taken surfaces the
// unique constraint as ErrDuplicateEmail.
func (r *UserRepository) Update(ctx context.Context, id int64, f ports.UpdateUserFields) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := make([]string, 0, 6)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if f.Name != nil {
		add("name", *f.Name)
	}
	if f.Email != nil {
		add("email", *f.Email)
	}
	if f.Age != nil {
		add("age", *f.Age)
	}
	if f.Phone != nil {
		add("phone", *f.Phone)
	}
	if f.IsActive != nil {
		add("is_active", *f.IsActive)
	}
	set = append(set, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), userColumns,
	)

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes the row permanently; deleting an absent id is NotFound.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// translateErr maps driver-level failures onto the domain taxonomy so the
// layers above never see pgx types.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation; class 08 = connection exceptions.
		switch {
		case pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, uniqueEmailConstraint):
			return domain.ErrDuplicateEmail
		case strings.HasPrefix(pgErr.Code, "08"):
			return domain.ErrStorageUnavailable
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.ErrStorageUnavailable
	}
	return err
}
