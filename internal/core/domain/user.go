package domain

import (
	"strings"
	"time"
)

// User is the single persisted resource managed by the service.
// ID and both timestamps are system-assigned; email is globally unique and
// always stored normalized.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeName strips surrounding whitespace. Applied before persistence.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeEmail trims and lowercases an email address. Idempotent: the
// repository only ever sees (and stores) normalized values, so lookups and
// the unique constraint operate on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
